package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{ErrSectionNotFound, http.StatusNotFound},
		{ErrProjectNotFound, http.StatusNotFound},
		{ErrPreconditionFailed, http.StatusBadRequest},
		{ErrInvalidParam, http.StatusBadRequest},
		{ErrGenerationFailed, http.StatusInternalServerError},
		{ErrParsingFailed, http.StatusInternalServerError},
		{ErrConflict, http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrTooManyRequests, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		if tc.err.HTTPStatus != tc.want {
			t.Errorf("%s: status=%d want %d", tc.err.Code, tc.err.HTTPStatus, tc.want)
		}
	}
}

func TestWithDetailDoesNotMutateSentinel(t *testing.T) {
	e := ErrPreconditionFailed.WithDetail("nothing to refine")
	if ErrPreconditionFailed.Detail != "" {
		t.Fatalf("sentinel mutated: %q", ErrPreconditionFailed.Detail)
	}
	if e.Detail != "nothing to refine" {
		t.Fatalf("detail=%q", e.Detail)
	}
}

func TestIsAndHasCodeThroughWrapping(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := fmt.Errorf("generate: %w", ErrGenerationFailed.WithError(cause))

	if !stderrors.Is(err, ErrGenerationFailed) {
		t.Fatalf("errors.Is should match by code")
	}
	if stderrors.Is(err, ErrParsingFailed) {
		t.Fatalf("errors.Is matched a different code")
	}
	if !HasCode(err, CodeGenerationFailed) {
		t.Fatalf("HasCode should find code through wrapping")
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("cause should stay reachable")
	}
	if got := AsAppError(err); got.Code != CodeGenerationFailed {
		t.Fatalf("AsAppError code=%s", got.Code)
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	got := AsAppError(stderrors.New("boom"))
	if got.Code != CodeUnknown || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("got %+v", got)
	}
}
