package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
)

func TestProductsList(t *testing.T) {
	products := catalog.Default()
	handler := ProductsList(products, testLogger())

	t.Run("all", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products", "", "", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got []catalog.Product
		decodeData(t, rec, &got)
		if len(got) != len(products.All()) {
			t.Fatalf("expected %d products, got %d", len(products.All()), len(got))
		}
	})

	t.Run("featured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products?featured=true", "", "", nil))
		var got []catalog.Product
		decodeData(t, rec, &got)
		if len(got) != 4 {
			t.Fatalf("expected 4 featured products, got %d", len(got))
		}
		for _, p := range got {
			if !p.Featured {
				t.Fatalf("product %s is not featured", p.ID)
			}
		}
	})

	t.Run("condition", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products?condition=Used%20-%20Good", "", "", nil))
		var got []catalog.Product
		decodeData(t, rec, &got)
		if len(got) != 2 {
			t.Fatalf("expected 2 used-good products, got %d", len(got))
		}
		for _, p := range got {
			if p.Condition != enums.ProductConditionUsedGood {
				t.Fatalf("unexpected condition %q", p.Condition)
			}
		}
	})

	t.Run("invalid condition", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products?condition=Broken", "", "", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductDetail(t *testing.T) {
	handler := ProductDetail(catalog.Default(), testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products/3", "", "", map[string]string{"productId": "3"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got catalog.Product
	decodeData(t, rec, &got)
	if got.ID != "3" || got.Price != 999 {
		t.Fatalf("unexpected product %+v", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest(http.MethodGet, "/api/v1/products/99", "", "", map[string]string{"productId": "99"}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", code)
	}
}
