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
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"go.shm.dev/framering/ring"
)

// IsAlive reports whether h's region's alive flag is set. The flag stays
// set from Create until Destroy, so a poisoned region (owner gone, never
// destroyed) still reports true.
func IsAlive(h *ring.Handle) bool {
	return atomic.LoadUint32(&h.Region.Header().Alive) != 0
}

// IsPoisoned reports whether h's region is marked alive but its owner
// process no longer exists: the owner crashed without a chance to
// Destroy its region.
//
// Called from the owner's own Handle it is always false: a process
// always sees itself as alive.
func IsPoisoned(h *ring.Handle) bool {
	hdr := h.Region.Header()
	if atomic.LoadUint32(&hdr.Alive) == 0 {
		return false
	}
	ownerAlive := unix.Kill(int(hdr.Owner), 0) == nil
	poisoned := !ownerAlive
	if poisoned {
		logger.Warn("region is poisoned", zap.String("name", h.Name), zap.Int32("owner", hdr.Owner))
	}
	return poisoned
}

// CstrIsAlive opens name just long enough to answer IsAlive, then closes
// it. It exists for callers that only have a name and no open Handle,
// mirroring the cstr_* convenience wrappers read_frame callers reach
// for when they don't otherwise need a long-lived handle.
//
// It is unsuitable for the owner process: Close refuses the owner's
// handles, so the extra mapping this opens is never released there.
func CstrIsAlive(name string) (bool, error) {
	h, err := Open(name)
	if err != nil {
		return false, err
	}
	defer Close(h)
	return IsAlive(h), nil
}

// CstrIsPoisoned is the name-only counterpart to IsPoisoned. Like
// CstrIsAlive, it is unsuitable for the owner process.
func CstrIsPoisoned(name string) (bool, error) {
	h, err := Open(name)
	if err != nil {
		return false, err
	}
	defer Close(h)
	return IsPoisoned(h), nil
}

// vim: foldmethod=marker
