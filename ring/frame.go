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

// Package ring implements the publish/consume protocol over a region:
// slot selection, the write path, and the blocking/non-blocking read
// path.
package ring

import "time"

// Frame is a consumer-local copy of one published image plus its
// metadata. The zero Frame is ready to Consume into: it has never seen
// a frame, so the first successful Consume call always returns the
// oldest frame still held in the region.
type Frame struct {
	Width, Height, Depth int
	AcquisitionTime      time.Time
	FrameUID             uint64
	Data                 []byte
}

// NewFrame returns an empty Frame ready to be passed to Consume. It
// exists mainly so callers coming from the block_t-shaped API have a
// named constructor to reach for instead of a bare literal.
func NewFrame() *Frame {
	return &Frame{}
}

// vim: foldmethod=marker
