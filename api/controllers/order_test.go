package controllers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yessgo/coin-terminal/api/middleware"
	"github.com/yessgo/coin-terminal/internal/order"
)

func TestOrderGenerateQR(t *testing.T) {
	session := refreshedSession(t)
	if err := session.ApplyDelta(5, 2); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	if err := session.ApplyDelta(7, 1); err != nil {
		t.Fatalf("apply delta: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/terminal/order/qr", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	OrderGenerateQR(order.NewPNGGenerator(256), testMetrics(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var envelope struct {
		Data qrResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}

	payload := envelope.Data.Payload
	if payload.PartnerID != 10 || payload.PaymentMethod != order.PaymentMethodYescoin {
		t.Fatalf("unexpected payload header: %+v", payload)
	}
	if len(payload.Items) != 2 || payload.Items[0].ProductID != 5 || payload.Items[1].ProductID != 7 {
		t.Fatalf("unexpected payload items: %+v", payload.Items)
	}

	png, err := base64.StdEncoding.DecodeString(envelope.Data.QRPNG)
	if err != nil {
		t.Fatalf("qr is not valid base64: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("qr payload is not a PNG")
	}
	if envelope.Data.Status == "" {
		t.Fatal("expected an operator status message")
	}
}

func TestOrderGenerateQREmptyBasket(t *testing.T) {
	session := refreshedSession(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/terminal/order/qr", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	OrderGenerateQR(order.NewPNGGenerator(256), testMetrics(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty basket, got %d", rec.Code)
	}
}

func TestOrderGenerateQRRequiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/terminal/order/qr", nil)
	OrderGenerateQR(order.NewPNGGenerator(256), testMetrics(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
