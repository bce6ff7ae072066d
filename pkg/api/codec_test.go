package api

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}

	t.Run("accepts numeric and string prices", func(t *testing.T) {
		for _, body := range []string{`{"name":"Chicken","price":16000.5}`, `{"name":"Chicken","price":"16000.50"}`} {
			var req CreateProductRequest
			if err := codec.Unmarshal([]byte(body), &req); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", body, err)
			}
			if !req.Price.Valid || !req.Price.Decimal.Equal(decimal.RequireFromString("16000.5")) {
				t.Errorf("Unmarshal(%s): unexpected price %+v", body, req.Price)
			}
		}
	})

	t.Run("null price stays invalid", func(t *testing.T) {
		var req CreateProductRequest
		if err := codec.Unmarshal([]byte(`{"name":"Chicken","price":null}`), &req); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if req.Price.Valid {
			t.Error("Expected null price to be invalid")
		}
	})

	t.Run("omitted empty flag is nil", func(t *testing.T) {
		var req CreateTableRequest
		if err := codec.Unmarshal([]byte(`{"numberOfGuests":0}`), &req); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if req.Empty != nil {
			t.Errorf("Expected nil Empty, got %v", *req.Empty)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		var req ListProductsRequest
		if err := codec.Unmarshal(nil, &req); err != nil {
			t.Errorf("Expected empty body to decode, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		var req CreateProductRequest
		if err := codec.Unmarshal([]byte(`{"name":`), &req); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}
