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

package ring

import (
	"sync/atomic"
	"time"

	"go.shm.dev/framering/region"
	"go.shm.dev/framering/ringerr"
)

// Consume copies the earliest frame newer than f that the region still
// holds into f (skipping frames already overwritten), reusing f's
// Data slice when it is already the right size. If blocking is true and
// no new frame is available yet, Consume waits for one; otherwise it
// returns ErrNoNewFrame immediately.
//
// All of the locking here hinges on one discipline: every check of
// Alive or FrameCount and every Wait happen with PublishMu held, so a
// frame published between "I checked, nothing new" and "I went to
// sleep" can never be missed the way it would be with a bare
// check-then-wait that isn't mutually exclusive with the broadcaster.
func Consume(h *Handle, f *Frame, blocking bool) error {
	hdr := h.Region.Header()

	f.Width, f.Height, f.Depth = int(hdr.Width), int(hdr.Height), int(hdr.Depth)
	imgSize := region.ImageSize(f.Width, f.Height, f.Depth)
	if int64(len(f.Data)) != imgSize {
		f.Data = make([]byte, imgSize)
	}

	hdr.PublishMu.Lock()

	if atomic.LoadUint32(&hdr.Alive) == 0 {
		hdr.PublishMu.Unlock()
		return ringerr.ErrNotActive
	}

	newest := atomic.LoadUint64(&hdr.FrameCount)
	last := f.FrameUID

	if last == newest {
		if !blocking {
			hdr.PublishMu.Unlock()
			return ringerr.ErrNoNewFrame
		}
		hdr.PublishCond.Wait(&hdr.PublishMu)
		if atomic.LoadUint32(&hdr.Alive) == 0 {
			hdr.PublishMu.Unlock()
			return ringerr.ErrNotActive
		}
		// More than one frame may have landed while we were parked;
		// re-reading here (rather than trusting the pre-wait value, as
		// the C reference this protocol is modeled on does) is what keeps the skip-ahead math in targetFrameUID
		// correct when a slow consumer falls behind by more than one
		// publish during a single wait.
		newest = atomic.LoadUint64(&hdr.FrameCount)
	}

	target := targetFrameUID(last, newest)
	slot := slotForUID(target)
	meta := &hdr.Slots[slot]

	atomic.AddUint32(&hdr.ActiveReaders, 1)
	for !meta.Lock.TryRLock() {
		hdr.PublishCond.Wait(&hdr.PublishMu)
		if atomic.LoadUint32(&hdr.Alive) == 0 {
			atomic.AddUint32(&hdr.ActiveReaders, ^uint32(0))
			hdr.PublishMu.Unlock()
			return ringerr.ErrNotActive
		}
	}
	hdr.PublishMu.Unlock()

	f.FrameUID = meta.FrameUID
	f.AcquisitionTime = time.Unix(0, meta.AcquisitionTime)
	copy(f.Data, h.Region.Image(slot))

	meta.Lock.RUnlock()
	atomic.AddUint32(&hdr.ActiveReaders, ^uint32(0))

	return nil
}

// vim: foldmethod=marker
