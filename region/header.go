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

// Package region maps the fixed-layout header and image slots that make
// up a frame ring's backing file, and owns the mmap lifecycle for it.
//
// Everything in Header and SlotMeta is read and written in place, across
// process boundaries, by unsafe.Pointer arithmetic over the mapped
// bytes rather than by encoding/decoding a Go-side copy: the mutable
// fields here are the shared memory, not a cached view of it, which is
// what lets the ipc primitives and sync/atomic give the cross-process
// visibility guarantees the ring protocol depends on.
package region

import (
	"unsafe"

	"go.shm.dev/framering/ipc"
)

// SlotCount is the number of image slots held by a region.
const SlotCount = 3

// SlotMeta is the per-slot metadata: which frame occupies the slot, when
// it was acquired, and the lock guarding the image bytes behind it.
type SlotMeta struct {
	FrameUID        uint64
	AcquisitionTime int64
	Lock            ipc.RWLock
	_               [4]byte // pad to 8-byte alignment for the next slot
}

// Header is the fixed-size region of the backing file that precedes the
// image data. It is mapped in place; every process that opens the
// region sees the same bytes.
type Header struct {
	// FrameCount is the number of frames ever published. It is
	// incremented with an atomic add outside of PublishMu (see the
	// ring package), so it must only ever be touched through
	// sync/atomic from Go code.
	FrameCount uint64

	Width, Height, Depth uint64

	// Alive is 0/1 rather than bool so it can be addressed with
	// sync/atomic.
	Alive uint32

	// ActiveReaders counts consumers that are between registering
	// interest in a slot and finishing their copy-out. Destroy spins
	// on this instead of a fixed sleep before unmapping.
	ActiveReaders uint32

	// Owner is the pid of the process that created the region. Only
	// the owner may Destroy it while healthy.
	Owner int32

	_ uint32 // padding

	PublishMu   ipc.Mutex
	PublishCond ipc.Cond

	Slots [SlotCount]SlotMeta
}

// HeaderSize is the number of bytes the fixed Header occupies at the
// front of the backing file.
const HeaderSize = unsafe.Sizeof(Header{})

// ImageSize returns the number of bytes a single image of the given
// dimensions occupies.
func ImageSize(width, height, depth int) int64 {
	return int64(width) * int64(height) * int64(depth)
}

// Size returns the total backing-file size required to hold a header
// plus SlotCount images of the given dimensions.
func Size(width, height, depth int) int64 {
	return int64(HeaderSize) + ImageSize(width, height, depth)*SlotCount
}

// vim: foldmethod=marker
