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

//go:build linux

package ipc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Futex operations used here. Deliberately not FUTEX_PRIVATE_FLAG: that
// flag tells the kernel all waiters share one address space, which does
// not hold across the process boundary this package exists to cross.
const (
	futexWaitOp = 0
	futexWakeOp = 1
)

// futexWait blocks while the 32-bit word at addr still equals expected.
// A lost race (EAGAIN, the value already changed) returns so the caller
// re-checks its predicate, which every caller in this package does
// anyway. An interrupted wait (EINTR) is re-issued with the same
// expected value, which returns at once if the word changed meanwhile.
func futexWait(addr unsafe.Pointer, expected uint32) {
	for {
		_, _, errno := unix.Syscall6(unix.SYS_FUTEX, uintptr(addr),
			uintptr(futexWaitOp), uintptr(expected), 0, 0, 0)
		switch errno {
		case 0, unix.EAGAIN:
			return
		case unix.EINTR:
			continue
		default:
			// Unexpected kernel-level failure (e.g. ENOSYS on a kernel
			// without futex support). There is no sensible recovery at
			// this layer; fall through as if woken so the caller
			// re-checks its predicate rather than spinning forever.
			return
		}
	}
}

// futexWake wakes up to n waiters blocked on the word at addr.
func futexWake(addr unsafe.Pointer, n int) {
	unix.Syscall6(unix.SYS_FUTEX, uintptr(addr), uintptr(futexWakeOp), uintptr(n), 0, 0, 0)
}

// vim: foldmethod=marker
