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

// Package ipc provides process-shared synchronization primitives: a
// mutex, a condition variable, and a reader/writer lock, all built on
// Linux futexes rather than pthreads.
//
// Go has no equivalent of PTHREAD_PROCESS_SHARED: the types in sync are
// only ever safe within a single address space. The primitives here fill
// that gap the way the futex(2) man page intends them to be used -
// directly on a shared memory word, with no per-process initialization
// step required. A futex word's zero value is always "uncontended and
// available" (Mutex unlocked, Cond at generation 0, RWLock unlocked), so
// a region created by zeroing a freshly truncated file (the tmpfs default)
// needs no separate attribute setup the way pthread_*_init with a
// PTHREAD_PROCESS_SHARED attribute would.
//
// Every type here is a small fixed-size value type with no pointers and
// no methods that allocate; they are meant to be embedded by value
// inside a struct that itself lives in memory obtained from mmap(2) with
// MAP_SHARED, and are unsafe to copy once in use.
package ipc

// vim: foldmethod=marker
