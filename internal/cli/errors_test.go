package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aidanlsb/onenotestats/internal/atomicfile"
	"github.com/aidanlsb/onenotestats/internal/hierarchy"
	"github.com/aidanlsb/onenotestats/internal/stats"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: &hierarchy.NotFoundError{Kind: "notebook", Name: "x"}, want: ErrNotebookNotFound},
		{name: "malformed", err: fmt.Errorf("extract: %w", &stats.MalformedDataError{NodeID: "p", Attribute: "name"}), want: ErrMalformedData},
		{name: "existing file", err: &atomicfile.TargetError{Path: "/x", Reason: "output file already exists"}, want: ErrFileExists},
		{name: "missing parent", err: &atomicfile.TargetError{Path: "/x", Reason: "could not find the parent folder path"}, want: ErrFileNotFound},
		{name: "coded", err: withCode(ErrDatabaseError, errors.New("locked"), ""), want: ErrDatabaseError},
		{name: "other", err: errors.New("boom"), want: ErrInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, _ := errorCode(tt.err)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDumpErrorChain(t *testing.T) {
	cause := &stats.MalformedDataError{NodeID: "p-1", Attribute: "dateTime", Err: errors.New("bad layout")}
	err := fmt.Errorf("extract pages: %w", cause)

	var buf bytes.Buffer
	dumpErrorChain(&buf, err)
	out := buf.String()

	for _, want := range []string{
		"extract pages: page p-1",
		"Type: *fmt.wrapError",
		"Type: *github.com/aidanlsb/onenotestats/internal/stats.MalformedDataError",
		stats.ErrMalformedData.Error(),
		"bad layout",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "**** CAUSED BY ****"); n != 3 {
		t.Errorf("expected 3 causes, got %d:\n%s", n, out)
	}
}
