/*
 *     Copyright 2026 The Modelgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mgerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error.
type Code int

const (
	// CodeConfiguration represents a missing or malformed registry or artifact.
	CodeConfiguration Code = iota + 1000

	// CodeData represents an invalid metric or feature input.
	CodeData

	// CodeExternalLibrary represents an opaque failure of the learning,
	// serialization or web layers.
	CodeExternalLibrary
)

// String returns the name of the code.
func (c Code) String() string {
	switch c {
	case CodeConfiguration:
		return "ConfigurationError"
	case CodeData:
		return "DataError"
	case CodeExternalLibrary:
		return "ExternalLibraryError"
	default:
		return "UnknownError"
	}
}

// Error is the error type shared by the trainer and the server.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s]%s: %s", e.Code, e.Message, e.Err)
	}

	return fmt.Sprintf("[%s]%s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

// Newf returns an error with the given code and formatted message.
func Newf(code Code, format string, a ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, a...),
	}
}

// Wrap annotates err with the given code and message.
func Wrap(code Code, err error, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// Configuration returns a ConfigurationError.
func Configuration(format string, a ...any) *Error {
	return Newf(CodeConfiguration, format, a...)
}

// Data returns a DataError.
func Data(format string, a ...any) *Error {
	return Newf(CodeData, format, a...)
}

// ExternalLibrary wraps a failure surfaced by a third-party layer.
func ExternalLibrary(err error, msg string) *Error {
	return Wrap(CodeExternalLibrary, err, msg)
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}

	return 0, false
}

// CheckError reports whether err carries the given code.
func CheckError(err error, code Code) bool {
	if err == nil {
		return false
	}

	c, ok := CodeOf(err)
	return ok && c == code
}

func IsConfiguration(err error) bool {
	return CheckError(err, CodeConfiguration)
}

func IsData(err error) bool {
	return CheckError(err, CodeData)
}

func IsExternalLibrary(err error) bool {
	return CheckError(err, CodeExternalLibrary)
}
