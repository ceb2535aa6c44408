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

// Cond is a futex-backed, process-shared condition variable. The zero
// value is ready to use.
//
// Cond does not itself acquire any mutex. Callers own the
// lock-then-check-then-wait discipline, exactly as with pthread_cond_t:
// Wait must be called with the companion Mutex held, and Broadcast
// should be called with that same Mutex held too, so that a waiter
// which has just observed "nothing to wait for yet" is guaranteed to be
// parked (not merely about to park) before any broadcast can run. That
// is the classic lost-wakeup window this package closes by requiring
// the broadcaster to take the mutex around the generation bump.
type Cond struct {
	seq uint32
}

func (c *Cond) addr() unsafe.Pointer { return unsafe.Pointer(&c.seq) }

// Wait atomically releases mu and blocks until a Broadcast is observed,
// then reacquires mu before returning. The caller must hold mu.
func (c *Cond) Wait(mu *Mutex) {
	seq := atomic.LoadUint32(&c.seq)
	mu.Unlock()
	futexWait(c.addr(), seq)
	mu.Lock()
}

// Broadcast wakes every waiter currently parked on c. The caller is
// expected to hold the companion mutex; see the type doc.
func (c *Cond) Broadcast() {
	atomic.AddUint32(&c.seq, 1)
	futexWake(c.addr(), math.MaxInt32)
}

// vim: foldmethod=marker
