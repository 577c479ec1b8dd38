// BSD 3-Clause License

// Copyright (c) 2023, Stephen Fletcher
// All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:

// 1. Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.

// 2. Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.

// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package apperr defines the error kinds shared by every cbtools command and
// maps them to process exit codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a record with too few or unparsable fields.
	// Readers recover from it by skipping the record.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidArgument marks a missing or unreadable command-line argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFormatMismatch marks input whose layout does not match the expected
	// schema, e.g. a required column name is absent.
	ErrFormatMismatch = errors.New("format mismatch")
)

// Exit codes returned by the cbtools binary.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitArgument = 2
)

// Error attaches a human readable message to one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) *Error {
	return Newf(ErrInvalidArgument, format, args...)
}

func FormatMismatch(format string, args ...any) *Error {
	return Newf(ErrFormatMismatch, format, args...)
}

func Malformed(format string, args ...any) *Error {
	return Newf(ErrMalformedRecord, format, args...)
}

// ExitCode classifies err into a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidArgument):
		return ExitArgument
	default:
		return ExitFailure
	}
}
