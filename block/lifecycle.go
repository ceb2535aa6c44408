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

package block

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"go.shm.dev/framering/region"
	"go.shm.dev/framering/ring"
	"go.shm.dev/framering/ringerr"
)

// Dir is the prefix every backing file is created under. Backing files
// live on /dev/shm, a tmpfs, so create/open/destroy never touch disk.
const Dir = "/dev/shm/buffer-"

// archiveSuffix is appended to a region's path during Destroy so that
// no other process can ever open it again by name, even for the brief
// window between marking it dead and finishing the unmap.
const archiveSuffix = "-archived-random-name-so-no-direction-can-ever-be-like-this"

// ImageSize returns the number of bytes one image occupies for the
// given geometry.
func ImageSize(width, height, depth int) int64 {
	return region.ImageSize(width, height, depth)
}

func pathFor(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return "", ringerr.ErrInvalidName
	}
	return Dir + name, nil
}

// Create allocates a brand-new region named name, sized to hold
// SlotCount images of the given geometry, and returns a Handle owned by
// the calling process. name must not contain a path separator, and no
// region with this name may currently exist.
func Create(name string, width, height, depth int) (*ring.Handle, error) {
	path, err := pathFor(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, ringerr.ErrAlreadyExists
	}

	r, err := region.CreateFile(path, width, height, depth)
	if err != nil {
		if os.IsExist(err) {
			return nil, ringerr.ErrAlreadyExists
		}
		return nil, err
	}

	hdr := r.Header()
	hdr.Width, hdr.Height, hdr.Depth = uint64(width), uint64(height), uint64(depth)
	hdr.Owner = int32(os.Getpid())
	atomic.StoreUint32(&hdr.Alive, 1)

	logger.Info("block created",
		zap.String("name", name),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("depth", depth),
		zap.Int("pid", os.Getpid()),
	)

	return &ring.Handle{Name: name, Region: r}, nil
}

// Open maps an existing region named name and returns a non-owning
// Handle onto it. This call never blocks and never mutates the header.
func Open(name string) (*ring.Handle, error) {
	path, err := pathFor(name)
	if err != nil {
		return nil, err
	}
	r, err := region.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ringerr.ErrNotFound
		}
		return nil, err
	}
	return &ring.Handle{Name: name, Region: r}, nil
}

// Close unmaps h without destroying the backing region. Close refuses
// to run for the owner's own Handle: the owner is the only process that
// can legitimately make the region's data go away, and doing so by
// accident via Close instead of Destroy would leave every other reader
// pointed at a region with no writer and no is_alive signal to explain
// why.
func Close(h *ring.Handle) error {
	if isOwner(h) {
		return ringerr.ErrOwnerMustDestroy
	}
	return h.Region.Unmap()
}

func isOwner(h *ring.Handle) bool {
	return h.Region.Header().Owner == int32(os.Getpid())
}

// vim: foldmethod=marker
