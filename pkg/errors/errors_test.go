package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataHTTPMapping(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeOutOfStock:   http.StatusConflict,
		CodeEstimation:   http.StatusServiceUnavailable,
		CodeInternal:     http.StatusInternalServerError,
		CodeDependency:   http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Errorf("%s: expected status %d got %d", code, want, got)
		}
	}
}

func TestMetadataRetryAndDetailsFlags(t *testing.T) {
	if !MetadataFor(CodeEstimation).Retryable {
		t.Error("estimation failures should be retryable")
	}
	if MetadataFor(CodeValidation).Retryable {
		t.Error("validation failures should not be retryable")
	}
	if !MetadataFor(CodeOutOfStock).DetailsAllowed {
		t.Error("out of stock should expose details (stock ceiling)")
	}
	if MetadataFor(CodeInternal).DetailsAllowed {
		t.Error("internal errors must not leak details")
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeValidation, "quantity must be a positive integer")
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Message() != "quantity must be a positive integer" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Details() != nil {
		t.Fatal("details should start nil")
	}
	want := "VALIDATION_ERROR: quantity must be a positive integer"
	if err.Error() != want {
		t.Fatalf("unexpected Error() output %q", err.Error())
	}
}

func TestWithDetailsRoundTrips(t *testing.T) {
	err := New(CodeOutOfStock, "only 3 left").WithDetails(map[string]any{"countInStock": 3})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("unexpected details type %T", err.Details())
	}
	if details["countInStock"] != 3 {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	wrapped := Wrap(CodeDependency, fmt.Errorf("dialing redis: %w", cause), "load cart")

	if !stdErrors.Is(wrapped, cause) {
		t.Fatal("cause lost through Wrap")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsFindsCodedErrorInChain(t *testing.T) {
	inner := New(CodeOutOfStock, "only 3 left")
	outer := fmt.Errorf("add item: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeOutOfStock {
		t.Fatal("expected the coded error from the chain")
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not match")
	}
	if As(nil) != nil {
		t.Fatal("As(nil) should return nil")
	}
}
