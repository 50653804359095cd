//go:build !ocr

// Package ocr provides the upstream OCR producers for the extraction
// engine: adapters that turn a document image into the raw line
// records the pipeline consumes.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; the Tesseract producer returns ErrOCRNotEnabled. To enable it,
// rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The Azure producer does not need the build tag.
package ocr

import (
	"errors"

	"facture/model"
)

// ErrOCRNotEnabled is returned when Tesseract functions are called but
// OCR support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// Recognize returns an error indicating OCR support is not enabled.
func (c *Client) Recognize(imageData []byte) ([]model.RawRecord, error) {
	return nil, ErrOCRNotEnabled
}
