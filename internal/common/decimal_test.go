package common

import (
	"encoding/json"
	"testing"
)

func TestFlexDecimalAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		Price FlexDecimal `json:"price"`
	}
	cases := map[string]string{
		`{"price": 99.95}`:   "99.95",
		`{"price": "99.95"}`: "99.95",
		`{"price": " 100 "}`: "100",
		`{"price": "1e2"}`:   "100",
	}
	for input, want := range cases {
		if err := json.Unmarshal([]byte(input), &payload); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if !payload.Price.Valid {
			t.Fatalf("expected %s to parse cleanly", input)
		}
		if payload.Price.Value.String() != want {
			t.Fatalf("expected %s from %s, got %s", want, input, payload.Price.Value)
		}
	}
}

func TestFlexDecimalCoercesGarbageToZero(t *testing.T) {
	var payload struct {
		Price FlexDecimal `json:"price"`
	}
	for _, input := range []string{`{"price": "not-a-number"}`, `{"price": null}`, `{"price": true}`, `{"price": {}}`} {
		if err := json.Unmarshal([]byte(input), &payload); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if !payload.Price.Value.IsZero() {
			t.Fatalf("expected zero for %s, got %s", input, payload.Price.Value)
		}
		if payload.Price.Valid {
			t.Fatalf("expected %s to be marked invalid", input)
		}
	}
}

func TestFlexDecimalAbsentField(t *testing.T) {
	var payload struct {
		Price FlexDecimal `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Price.Value.IsZero() {
		t.Fatalf("expected zero for absent field, got %s", payload.Price.Value)
	}
	if payload.Price.Coerced() {
		t.Fatal("absent field should not count as coerced")
	}
}

func TestFlexIntTruncates(t *testing.T) {
	var payload struct {
		Qty FlexInt `json:"qty"`
	}
	if err := json.Unmarshal([]byte(`{"qty": "3.9"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Qty.Value != 3 {
		t.Fatalf("expected 3, got %d", payload.Qty.Value)
	}
	if err := json.Unmarshal([]byte(`{"qty": "three"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Qty.Value != 0 || !payload.Qty.Coerced() {
		t.Fatalf("expected coerced zero, got %d", payload.Qty.Value)
	}
}
