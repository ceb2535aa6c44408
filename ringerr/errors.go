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

// Package ringerr defines the sentinel errors returned across the
// frame ring's public surface. Contract errors carry a stable numeric
// Code a caller can match against; lifecycle and authorization errors
// do not, since nothing downstream depends on their exact identity.
package ringerr

import "errors"

// Contract errors. These three carry the stable numeric codes that
// existing consumers may depend on; do not renumber them.
var (
	// ErrGeometryMismatch is returned by Publish when the caller's
	// width/height/depth do not match the region's geometry.
	ErrGeometryMismatch = &CodedError{code: 1, msg: "ring: frame geometry does not match region"}

	// ErrNotActive is returned when an operation targets a region
	// whose alive flag is false. A poisoned region keeps its alive
	// flag set until it is destroyed, so it does not yield this error.
	ErrNotActive = &CodedError{code: 2, msg: "ring: region is not active"}

	// ErrNoNewFrame is returned by a non-blocking Consume call when the
	// caller is already caught up to the newest published frame.
	ErrNoNewFrame = &CodedError{code: 3, msg: "ring: no new frame available"}
)

// Lifecycle errors: surfaced by Create/Open failing outright (no handle
// returned), not by a status code.
var (
	ErrInvalidName   = errors.New("ring: name must not contain a path separator")
	ErrAlreadyExists = errors.New("ring: backing file already exists")
	ErrNotFound      = errors.New("ring: backing file does not exist")
)

// Authorization errors: the caller attempted an operation its role does
// not permit.
var (
	ErrOwnerMustDestroy   = errors.New("ring: owner must call Destroy, not Close")
	ErrNotAuthorized      = errors.New("ring: caller is neither the owner nor observing a poisoned region")
)

// CodedError is a contract error carrying one of the stable numeric
// status codes a caller can match on without comparing error values:
// Success = 0, GeometryMismatch = 1, NotActive = 2, NoNewFrame = 3.
type CodedError struct {
	code int
	msg  string
}

func (e *CodedError) Error() string { return e.msg }

// Code returns the stable numeric status code for this error.
func (e *CodedError) Code() int { return e.code }

// vim: foldmethod=marker
