package errors_test

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	apperrors "github.com/user/radsim_go/internal/errors"
)

func TestIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := apperrors.New(apperrors.CodeNotFound, "data file for iron not found")
	if !stderrors.Is(err, apperrors.ErrNotFound) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(err, apperrors.ErrMalformedData) {
		t.Fatal("expected different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	err := apperrors.Wrap(apperrors.CodeNotFound, "open table", fs.ErrNotExist)
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "open table: file does not exist" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: fmt.Errorf("boom"), want: ""},
		{name: "direct", err: apperrors.New(apperrors.CodeInvalidParameter, "bad"), want: apperrors.CodeInvalidParameter},
		{name: "wrapped", err: fmt.Errorf("load: %w", apperrors.New(apperrors.CodeMalformedData, "bad row")), want: apperrors.CodeMalformedData},
		{name: "joined", err: stderrors.Join(fmt.Errorf("plain"), apperrors.New(apperrors.CodeNotFound, "gone")), want: apperrors.CodeNotFound},
		{name: "joined inside wrap", err: fmt.Errorf("compare: %w", stderrors.Join(fs.ErrClosed, apperrors.New(apperrors.CodeUnknownMaterial, "copper"))), want: apperrors.CodeUnknownMaterial},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := apperrors.CodeOf(tc.err); got != tc.want {
				t.Fatalf("CodeOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := map[apperrors.Code]int{
		apperrors.CodeNotFound:         http.StatusNotFound,
		apperrors.CodeUnknownMaterial:  http.StatusUnprocessableEntity,
		apperrors.CodeInvalidParameter: http.StatusUnprocessableEntity,
		apperrors.CodeMalformedData:    http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := code.HTTPStatus(); got != want {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", code, got, want)
		}
	}
}
