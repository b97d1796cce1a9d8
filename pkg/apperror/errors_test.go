package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidOperation, http.StatusBadRequest},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := MapErrorToStatus(tc.err); got != tc.want {
			t.Errorf("MapErrorToStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMapErrorToStatusAppError(t *testing.T) {
	err := New(http.StatusConflict, "already connected", ErrConflict)
	if got := MapErrorToStatus(err); got != http.StatusConflict {
		t.Fatalf("MapErrorToStatus(AppError) = %d, want %d", got, http.StatusConflict)
	}

	// Code wins even when the wrapped sentinel maps differently.
	err = New(http.StatusNotFound, "gone", ErrBadRequest)
	if got := MapErrorToStatus(err); got != http.StatusNotFound {
		t.Fatalf("MapErrorToStatus(AppError) = %d, want %d", got, http.StatusNotFound)
	}

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("handler: %w", New(http.StatusForbidden, "nope", ErrForbidden))
	if got := MapErrorToStatus(wrapped); got != http.StatusForbidden {
		t.Fatalf("MapErrorToStatus(wrapped AppError) = %d, want %d", got, http.StatusForbidden)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := New(http.StatusConflict, "duplicate", ErrConflict)
	if !errors.Is(err, ErrConflict) {
		t.Fatal("AppError should unwrap to its sentinel")
	}
}
