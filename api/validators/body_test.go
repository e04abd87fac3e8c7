package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
)

type createRequest struct {
	Barcode      string `json:"barcode" validate:"required"`
	Name         string `json:"name" validate:"required"`
	InitialStock int    `json:"initial_stock" validate:"gte=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"barcode":"12345","name":"Schrauben M3","initial_stock":10}`))

	var payload createRequest
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.Barcode != "12345" || payload.InitialStock != 10 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"barcode":"12345","name":"x","bogus":true}`))

	var payload createRequest
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","initial_stock":-1}`))

	var payload createRequest
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["barcode"] != "is required" {
		t.Fatalf("unexpected barcode detail %q", details["barcode"])
	}
	if details["initial_stock"] != "must be 0 or greater" {
		t.Fatalf("unexpected initial_stock detail %q", details["initial_stock"])
	}
}
