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
	"sync/atomic"
	"unsafe"
)

// Mutex states, following the classic three-state futex mutex (Drepper,
// "Futexes Are Tricky"): unlocked, locked with no waiters, and locked
// with at least one waiter parked in the kernel.
const (
	mutexUnlocked  = 0
	mutexLocked    = 1
	mutexContended = 2
)

// Mutex is a futex-backed, process-shared exclusive lock. The zero value
// is unlocked. See the package doc for embedding requirements.
type Mutex struct {
	state uint32
}

func (m *Mutex) addr() unsafe.Pointer { return unsafe.Pointer(&m.state) }

// Lock blocks until the mutex is held.
func (m *Mutex) Lock() {
	if atomic.CompareAndSwapUint32(&m.state, mutexUnlocked, mutexLocked) {
		return
	}
	for {
		// Announce contention and find out whether the lock is free.
		if atomic.SwapUint32(&m.state, mutexContended) == mutexUnlocked {
			return
		}
		futexWait(m.addr(), mutexContended)
	}
}

// TryLock acquires the mutex without blocking, reporting whether it
// succeeded.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.state, mutexUnlocked, mutexLocked)
}

// Unlock releases the mutex, waking one waiter if any were contending.
func (m *Mutex) Unlock() {
	if atomic.SwapUint32(&m.state, mutexUnlocked) == mutexContended {
		futexWake(m.addr(), 1)
	}
}

// vim: foldmethod=marker
