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

package ipc

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// RWLock is a futex-backed, process-shared reader/writer lock. The zero
// value is unlocked.
//
// This is a reader-preferring lock: a steady stream of overlapping
// readers can delay a writer indefinitely. That is acceptable for the
// one caller this package exists for (the per-slot frame lock): the
// writer only ever locks the single slot it is about to overwrite next,
// which by construction is not the slot any reader is currently
// targeting as "the latest" (see the ring's slot-selection rationale),
// so sustained contention on one slot between a writer and readers is
// not the expected steady-state load.
type RWLock struct {
	state int32 // 0 = unlocked, -1 = write-held, n>0 = n readers held
}

func (l *RWLock) addr() unsafe.Pointer { return unsafe.Pointer(&l.state) }

// TryRLock acquires a shared hold without blocking, reporting whether it
// succeeded. It never blocks even if a writer currently holds the lock.
func (l *RWLock) TryRLock() bool {
	for {
		s := atomic.LoadInt32(&l.state)
		if s < 0 {
			return false
		}
		if atomic.CompareAndSwapInt32(&l.state, s, s+1) {
			return true
		}
	}
}

// RUnlock releases a shared hold acquired via TryRLock. It wakes any
// writer parked in Lock: a writer that observed this reader's count
// and went to sleep on it would otherwise never be woken once the
// count drops, since nothing else touches this address on the read
// path.
func (l *RWLock) RUnlock() {
	if atomic.AddInt32(&l.state, -1) == 0 {
		futexWake(l.addr(), math.MaxInt32)
	}
}

// Lock blocks until an exclusive hold is acquired.
func (l *RWLock) Lock() {
	for {
		if atomic.CompareAndSwapInt32(&l.state, 0, -1) {
			return
		}
		s := atomic.LoadInt32(&l.state)
		if s == 0 {
			continue
		}
		futexWait(l.addr(), uint32(s))
	}
}

// Unlock releases an exclusive hold acquired via Lock.
func (l *RWLock) Unlock() {
	atomic.StoreInt32(&l.state, 0)
	futexWake(l.addr(), math.MaxInt32)
}

// vim: foldmethod=marker
