package services

import (
	"errors"
	"strings"
	"testing"
)

func TestFilterPatch(t *testing.T) {
	allowList := map[string]bool{"name": true, "phone": true}

	fields, err := filterPatch(map[string]interface{}{"name": "x", "phone": "y"}, allowList)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("fields = %v", fields)
	}

	_, err = filterPatch(map[string]interface{}{"name": "x", "seq": 9, "id": "z"}, allowList)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	// Rejected names come back sorted for a stable message.
	if !strings.Contains(validationErr.Message, "[id seq]") {
		t.Errorf("message = %q", validationErr.Message)
	}

	if _, err := filterPatch(nil, allowList); err == nil {
		t.Fatal("empty patch accepted")
	}
}

func TestToInt64(t *testing.T) {
	if v, err := toInt64(float64(42)); err != nil || v != 42 {
		t.Errorf("float64 = %d, %v", v, err)
	}
	if _, err := toInt64(float64(42.5)); err == nil {
		t.Error("fractional value accepted")
	}
	if v, err := toInt64(int(7)); err != nil || v != 7 {
		t.Errorf("int = %d, %v", v, err)
	}
	if _, err := toInt64("42"); err == nil {
		t.Error("string accepted")
	}
}
