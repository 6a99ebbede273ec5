// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/aidanlsb/onenotestats/internal/atomicfile"
	"github.com/aidanlsb/onenotestats/internal/hierarchy"
	"github.com/aidanlsb/onenotestats/internal/stats"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	ErrNotebookNotFound = "NOTEBOOK_NOT_FOUND"
	ErrMalformedData    = "MALFORMED_DATA"
	ErrConfigInvalid    = "CONFIG_INVALID"
	ErrSourceMissing    = "HIERARCHY_SOURCE_MISSING"

	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	ErrDatabaseError = "DATABASE_ERROR"

	ErrMissingArgument = "MISSING_ARGUMENT"
	ErrInternal        = "INTERNAL_ERROR"
)

// codedError carries a stable code and an optional suggestion alongside the
// underlying error.
type codedError struct {
	code       string
	suggestion string
	err        error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code string, err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, suggestion: suggestion, err: err}
}

// errorCode classifies err for the JSON envelope.
func errorCode(err error) (string, string) {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code, ce.suggestion
	}

	var te *atomicfile.TargetError
	switch {
	case errors.Is(err, hierarchy.ErrNotFound):
		return ErrNotebookNotFound, "Check the notebook nickname in the hierarchy file"
	case errors.Is(err, stats.ErrMalformedData):
		return ErrMalformedData, "Re-export the notebook hierarchy"
	case errors.As(err, &te) && te.Reason == "could not find the parent folder path":
		return ErrFileNotFound, ""
	case errors.Is(err, atomicfile.ErrTargetConflict):
		return ErrFileExists, "Choose a different output path"
	}
	return ErrInternal, ""
}

// dumpErrorChain prints every error in the chain with its message and type.
// Errors joining several causes print each branch in order.
func dumpErrorChain(w io.Writer, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "**** ERROR ****")
	stack := []error{err}
	for first := true; len(stack) > 0; first = false {
		err := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !first {
			fmt.Fprintln(w, "**** CAUSED BY ****")
		}
		fmt.Fprintln(w, err.Error())
		fmt.Fprintf(w, "Type: %s\n", errorTypeName(err))

		switch next := err.(type) {
		case interface{ Unwrap() error }:
			if cause := next.Unwrap(); cause != nil {
				stack = append(stack, cause)
			}
		case interface{ Unwrap() []error }:
			causes := next.Unwrap()
			for i := len(causes) - 1; i >= 0; i-- {
				if causes[i] != nil {
					stack = append(stack, causes[i])
				}
			}
		}
	}
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		return "*" + t.PkgPath() + "." + t.Name()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
