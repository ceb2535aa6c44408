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
	"go.uber.org/zap"

	"go.shm.dev/framering/block"
)

var destroyName string

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Tear down a region, recovering it if poisoned",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := block.Open(destroyName)
		if err != nil {
			return fmt.Errorf("open: %w", err)
		}
		if err := block.Destroy(h); err != nil {
			return fmt.Errorf("destroy: %w", err)
		}
		log.Info("destroyed", zap.String("name", destroyName))
		return nil
	},
}

func init() {
	destroyCmd.Flags().StringVar(&destroyName, "name", "", "region name (required)")
	destroyCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(destroyCmd)
}

// vim: foldmethod=marker
