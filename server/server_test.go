package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"facture"
	"facture/model"
)

const testKey = "test_secret_key"

func init() {
	gin.SetMode(gin.TestMode)
}

func rectRecord(index int, text string, x, y, w, h float64) model.RawRecord {
	return model.RawRecord{
		Index: index,
		Text:  text,
		Quad: model.Quad{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		},
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	recognizer := RecognizerFunc(func(ctx context.Context, imageData []byte) ([]model.RawRecord, error) {
		return []model.RawRecord{
			rectRecord(0, "Total", 400, 500, 80, 20),
			rectRecord(1, "12500.00", 500, 500, 100, 20),
		}, nil
	})
	return New(facture.New(), recognizer, nil, testKey)
}

func uploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("not a real image")); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/extract", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRootIsOpen(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestExtractRequiresAPIKey(t *testing.T) {
	srv := testServer(t)

	req := uploadRequest(t, "invoice.png")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 without key", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["detail"] != "Could not validate credentials" {
		t.Errorf("detail = %q", body["detail"])
	}

	req = uploadRequest(t, "invoice.png")
	req.Header.Set("x-api-key", "wrong")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 with a wrong key", rec.Code)
	}
}

func TestExtractRejectsUnsupportedFileType(t *testing.T) {
	srv := testServer(t)

	req := uploadRequest(t, "invoice.pdf")
	req.Header.Set("x-api-key", testKey)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for .pdf", rec.Code)
	}
}

func TestExtractReturnsEnvelope(t *testing.T) {
	srv := testServer(t)

	req := uploadRequest(t, "invoice.png")
	req.Header.Set("x-api-key", testKey)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Fields map[string]string `json:"fields"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Status != "success" {
		t.Errorf("status = %q, want 'success'", envelope.Status)
	}
	if got := envelope.Data.Fields["total_ttc"]; got != "12500.00" {
		t.Errorf("total_ttc = %q, want '12500.00'", got)
	}
}

func TestListWithoutStoreIsEmpty(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/extractions", nil)
	req.Header.Set("x-api-key", testKey)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list []Extraction
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("got %d extractions, want 0", len(list))
	}
}
