package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewNotFoundError("missing", nil), http.StatusNotFound},
		{NewConflictError("dup", nil), http.StatusConflict},
		{NewValidationError("bad", nil), http.StatusBadRequest},
		{NewAuthError("nope", nil), http.StatusUnauthorized},
		{NewDatabaseError("db", nil), http.StatusInternalServerError},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.err.StatusCode(); got != c.want {
			t.Fatalf("%q: got %d, want %d", c.err.Message, got, c.want)
		}
	}
}

func TestWrappedPredicates(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("loading profile: %w", NewDatabaseError("failed to load profile", cause))

	if !IsDatabaseError(err) {
		t.Fatal("expected wrapped database error to be detected")
	}
	if IsNotFound(err) {
		t.Fatal("database error must not look like not-found")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	appErr, ok := FromError(err)
	if !ok {
		t.Fatal("FromError failed on wrapped error")
	}
	if appErr.ToResponse().Error != "failed to load profile" {
		t.Fatalf("response leaked cause: %q", appErr.ToResponse().Error)
	}
}
