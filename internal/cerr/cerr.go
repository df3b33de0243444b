// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr provides constant sentinel errors for the internal packages.
package cerr

// Error is an error whose identity is its text, so it can be declared as a
// constant and matched with errors.Is.
type Error string

func (e Error) Error() string {
	return string(e)
}
