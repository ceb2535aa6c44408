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

package region

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Region is a live mapping of a frame ring's backing file: a Header
// followed by SlotCount image slots, all addressed in place.
//
// Unlike the wraparound byte-stream ring this package's sibling was
// adapted from, a frame region never needs a sliding window over the
// mapping: every slot is addressed by a fixed modular index, so a
// single unix.Mmap call is all that's needed here.
type Region struct {
	file *os.File
	data []byte
	hdr  *Header
}

// Header returns the live, mapped header. Fields that change while the
// region is live (FrameCount, Alive, ActiveReaders) are touched through
// sync/atomic, and slot metadata only under that slot's lock, since
// other processes may be mutating the same bytes. The geometry and
// Owner are written once at creation and read with plain loads.
func (r *Region) Header() *Header { return r.hdr }

// File returns the backing file. Closing it directly leaves the mapping
// intact, but a later Unmap then returns the error from closing it a
// second time; Unmap alone releases both.
func (r *Region) File() *os.File { return r.file }

// Image returns the byte slice for image slot i, backed directly by the
// mapping.
func (r *Region) Image(i int) []byte {
	size := ImageSize(int(r.hdr.Width), int(r.hdr.Height), int(r.hdr.Depth))
	off := int64(HeaderSize) + int64(i)*size
	return r.data[off : off+size]
}

// Map mmaps f (already truncated to the right size) and returns a
// Region backed by it.
func Map(f *os.File, size int64) (*Region, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &Region{
		file: f,
		data: data,
		hdr:  (*Header)(unsafe.Pointer(&data[0])),
	}, nil
}

// Unmap releases the mapping and closes the backing file descriptor.
// Callers must not use the Region after calling Unmap.
func (r *Region) Unmap() error {
	munmapErr := unix.Munmap(r.data)
	closeErr := r.file.Close()
	if munmapErr != nil {
		return munmapErr
	}
	return closeErr
}

// CreateFile creates a brand-new backing file at path sized for the
// given image geometry, truncates it, and maps it. It fails if a file
// already exists at path: O_EXCL makes the existence check and the
// creation atomic, so two owners racing to create the same name cannot
// both succeed.
func CreateFile(path string, width, height, depth int) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, err
	}
	size := Size(width, height, depth)
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	r, err := Map(f, size)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return r, nil
}

// OpenFile opens and maps an existing backing file at path, sized
// according to the bytes already on disk.
func OpenFile(path string) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	r, err := Map(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// vim: foldmethod=marker
