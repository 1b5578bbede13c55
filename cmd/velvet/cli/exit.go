// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/velvet-club/velvet/lib/api"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string;
// the command is expected to have already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error to the process exit code. API error
// categories get stable codes so scripts can branch on them:
// validation and usage errors exit 2, authentication 3, authorization
// 4, not-found 5, everything else 1.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}

	var apiError *api.Error
	if errors.As(err, &apiError) {
		switch apiError.Category {
		case api.CategoryValidation:
			return 2
		case api.CategoryUnauthenticated:
			return 3
		case api.CategoryForbidden:
			return 4
		case api.CategoryNotFound:
			return 5
		}
	}
	return 1
}
