package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hucklog/ultimate-stats/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: game g1", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"conflict", fmt.Errorf("%w: game g1", usecase.ErrConflict), http.StatusConflict, "alreadyExists"},
		{"unauthorized", fmt.Errorf("%w: bad token", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"dependency", fmt.Errorf("%w: directory down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("unexpected status: got %d want %d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("unexpected reason: got %q want %q", mapped.Reason, tc.wantReason)
			}
		})
	}
}
