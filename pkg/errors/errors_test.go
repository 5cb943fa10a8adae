package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeNotFound, "cart item missing")
	if err.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Error() != "NOT_FOUND: cart item missing" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "flush cart item")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be retrievable via errors.Is")
	}
	if typed := As(err); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed dependency error, got %v", err)
	}
}

func TestWrapNilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, nil, "fallback")
	if err.Unwrap() != nil {
		t.Fatal("expected nil cause")
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "bad quantity").WithDetails(map[string]string{"quantity": "must be at least 0"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["quantity"] == "" {
		t.Fatalf("expected details to round-trip, got %v", err.Details())
	}
}

func TestDumpExtractsChain(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("root")
	err := Wrap(CodeDependency, cause, "outer")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected unwrap chain, got %v", dump.Chain)
	}
}
