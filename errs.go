// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrMissingColumn = constError("missing required column")
const ErrMalformedRow = constError("malformed row")
const ErrInvalidConfig = constError("invalid configuration")
const ErrMissingValue = constError("no rows match")
const ErrDuplicateRow = constError("duplicate rows")
const ErrUnknownPolicy = constError("unknown policy")
