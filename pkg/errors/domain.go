package errors

import (
	"context"
	"errors"
	"io/fs"

	"github.com/viktori/matteray/pkg/array"
	"github.com/viktori/matteray/pkg/codec"
	"github.com/viktori/matteray/pkg/matrix"
)

var domainCodes = []struct {
	target error
	code   Code
}{
	{array.ErrIndexOutOfBounds, ErrCodeIndexOutOfBounds},
	{array.ErrInvalidRange, ErrCodeIndexOutOfBounds},
	{array.ErrInvalidLength, ErrCodeInvalidDimensions},
	{array.ErrNilElement, ErrCodeNilElement},
	{array.ErrDimensionMismatch, ErrCodeDimensionMismatch},
	{array.ErrEmptyOperand, ErrCodeEmptyOperand},
	{matrix.ErrRaggedRows, ErrCodeRaggedRows},
	{matrix.ErrInvalidDimensions, ErrCodeInvalidDimensions},
	{matrix.ErrInvalidArgument, ErrCodeInvalidArgument},
	{codec.ErrUnknownFormat, ErrCodeInvalidFormat},
	{codec.ErrMalformed, ErrCodeInvalidFormat},
	{fs.ErrNotExist, ErrCodeFileNotFound},
	{context.Canceled, ErrCodeCanceled},
	{context.DeadlineExceeded, ErrCodeTimeout},
}

// FromDomain converts an error from the core packages into an *Error.
// Errors that already carry a code are returned unchanged, nil stays nil and
// anything unrecognised becomes ErrCodeInternal.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	for _, dc := range domainCodes {
		if errors.Is(err, dc.target) {
			return &Error{Code: dc.code, Message: err.Error(), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: err.Error(), Cause: err}
}
