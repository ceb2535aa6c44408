// {{{ Copyright (c) Paul R. Tagliamonte <paultag@gmail.com> 2020-2021
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.shm.dev/framering/block"
)

var statusName string

var isAliveCmd = &cobra.Command{
	Use:   "is-alive",
	Short: "Print whether a region's alive flag is set (still true if poisoned)",
	RunE: func(cmd *cobra.Command, args []string) error {
		alive, err := block.CstrIsAlive(statusName)
		if err != nil {
			return fmt.Errorf("is-alive: %w", err)
		}
		fmt.Println(alive)
		return nil
	},
}

var isPoisonedCmd = &cobra.Command{
	Use:   "is-poisoned",
	Short: "Print whether a region's owner has crashed without destroying it",
	RunE: func(cmd *cobra.Command, args []string) error {
		poisoned, err := block.CstrIsPoisoned(statusName)
		if err != nil {
			return fmt.Errorf("is-poisoned: %w", err)
		}
		fmt.Println(poisoned)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{isAliveCmd, isPoisonedCmd} {
		c.Flags().StringVar(&statusName, "name", "", "region name (required)")
		c.MarkFlagRequired("name")
		rootCmd.AddCommand(c)
	}
}

// vim: foldmethod=marker
