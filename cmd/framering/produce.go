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
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go.shm.dev/framering/block"
	"go.shm.dev/framering/ring"
)

// datasizeFlag adapts datasize.ByteSize to pflag's Value interface so
// it can be used directly as a command-line flag type, accepting
// human-readable sizes such as "4MB" or "512KB".
type datasizeFlag struct{ v *datasize.ByteSize }

func (d datasizeFlag) String() string     { return d.v.HumanReadable() }
func (d datasizeFlag) Type() string       { return "size" }
func (d datasizeFlag) Set(s string) error { return d.v.UnmarshalText([]byte(s)) }

var produceArgs struct {
	name              string
	width             int
	height            int
	depth             int
	maxImageSize      datasize.ByteSize
	fps               float64
}

var produceCmd = &cobra.Command{
	Use:   "produce",
	Short: "Create a region and publish synthetic frames into it until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		imageSize := block.ImageSize(produceArgs.width, produceArgs.height, produceArgs.depth)
		if produceArgs.maxImageSize > 0 && uint64(imageSize) > uint64(produceArgs.maxImageSize) {
			return fmt.Errorf("image size %s exceeds --max-image-size %s",
				datasize.ByteSize(imageSize).HumanReadable(), produceArgs.maxImageSize.HumanReadable())
		}

		h, err := block.Create(produceArgs.name, produceArgs.width, produceArgs.height, produceArgs.depth)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		interval := time.Second
		if produceArgs.fps > 0 {
			interval = time.Duration(float64(time.Second) / produceArgs.fps)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		data := make([]byte, imageSize)
		log.Info("producing frames", zap.String("name", produceArgs.name),
			zap.Int("width", produceArgs.width), zap.Int("height", produceArgs.height),
			zap.Int("depth", produceArgs.depth), zap.Duration("interval", interval))

		for {
			select {
			case <-sigCh:
				log.Info("shutting down, destroying region", zap.String("name", produceArgs.name))
				return block.Destroy(h)
			case now := <-ticker.C:
				rand.Read(data)
				if err := ring.Publish(h, produceArgs.width, produceArgs.height, produceArgs.depth, now, data); err != nil {
					log.Error("publish failed", zap.Error(err))
				}
			}
		}
	},
}

func init() {
	produceCmd.Flags().StringVar(&produceArgs.name, "name", "", "region name (required)")
	produceCmd.Flags().IntVar(&produceArgs.width, "width", 640, "image width in pixels")
	produceCmd.Flags().IntVar(&produceArgs.height, "height", 480, "image height in pixels")
	produceCmd.Flags().IntVar(&produceArgs.depth, "depth", 3, "bytes per pixel")
	produceCmd.Flags().Float64Var(&produceArgs.fps, "fps", 30, "frames published per second")
	produceCmd.Flags().Var(datasizeFlag{&produceArgs.maxImageSize}, "max-image-size",
		"refuse to create a region whose per-frame image exceeds this size, e.g. 8MB")
	produceCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(produceCmd)
}

// vim: foldmethod=marker
