package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyUnmarshalAcceptsNumberAndString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "number", input: `12.5`, want: "12.50"},
		{name: "string", input: `"7.999"`, want: "8.00"},
		{name: "empty string", input: `""`, want: "0.00"},
		{name: "integer", input: `3`, want: "3.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Money
			if err := json.Unmarshal([]byte(tc.input), &m); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if m.String() != tc.want {
				t.Fatalf("want %s got %s", tc.want, m.String())
			}
		})
	}
}

func TestMoneyMarshalFixedTwoDecimals(t *testing.T) {
	raw, err := json.Marshal(MustMoney("10"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"10.00"` {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{
		Product:  Product{ID: "p1", DiscountedPrice: MustMoney("4.99")},
		Quantity: 3,
	}
	if got := item.LineTotal().String(); got != "14.97" {
		t.Fatalf("line total want 14.97 got %s", got)
	}
}
