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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/backoff/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.shm.dev/framering/block"
	"go.shm.dev/framering/ring"
	"go.shm.dev/framering/ringerr"
)

var consumeArgs struct {
	name     string
	reconnect bool
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Open an existing region and print frames as they are published",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		h, err := openWithReconnect(ctx, consumeArgs.name)
		if err != nil {
			return err
		}

		f := ring.NewFrame()
		for {
			select {
			case <-ctx.Done():
				return block.Close(h)
			default:
			}

			err := ring.Consume(h, f, true)
			switch {
			case err == nil:
				log.Info("frame", zap.String("name", consumeArgs.name),
					zap.Uint64("frame_uid", f.FrameUID),
					zap.Time("acquired_at", f.AcquisitionTime),
					zap.Int("bytes", len(f.Data)))
			case errors.Is(err, ringerr.ErrNotActive) && consumeArgs.reconnect:
				log.Warn("region went inactive, waiting for a new owner", zap.String("name", consumeArgs.name))
				block.Close(h)
				h, err = openWithReconnect(ctx, consumeArgs.name)
				if err != nil {
					return err
				}
				f = ring.NewFrame()
			default:
				return fmt.Errorf("consume: %w", err)
			}
		}
	},
}

// openWithReconnect retries Open with exponential backoff until it
// succeeds or ctx is cancelled, for the case where the region doesn't
// exist yet (or not yet again, after a prior owner's Destroy).
func openWithReconnect(ctx context.Context, name string) (*ring.Handle, error) {
	return backoff.Retry(ctx, func() (*ring.Handle, error) {
		h, err := block.Open(name)
		if err != nil {
			return nil, err
		}
		return h, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()))
}

func init() {
	consumeCmd.Flags().StringVar(&consumeArgs.name, "name", "", "region name (required)")
	consumeCmd.Flags().BoolVar(&consumeArgs.reconnect, "reconnect", true,
		"keep retrying if the region is destroyed and recreated under the same name")
	consumeCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(consumeCmd)
}

// vim: foldmethod=marker
