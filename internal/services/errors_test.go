package services_test

import (
	"errors"
	"testing"

	"splice/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrValidation, "project", "load", "bad document", base)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatal("expected validation marker")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped cause")
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("expected transient marker")
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.Wrap(services.ErrNotFound, "project", "get", "missing", nil), 404},
		{services.Wrap(services.ErrValidation, "timeline", "put", "bad", nil), 422},
		{services.Wrap(services.ErrTimeout, "media", "probe", "slow", nil), 504},
		{errors.New("plain"), 500},
	}
	for _, tc := range cases {
		if got := services.HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
