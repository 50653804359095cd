//go:build ocr

// Package ocr provides the upstream OCR producers for the extraction
// engine: adapters that turn a document image into the raw line
// records the pipeline consumes.
//
// The Tesseract producer wraps the engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Tesseract support is compiled in only with the "ocr" build tag:
//
//	go build -tags ocr
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"facture/model"
)

// Client wraps Tesseract for line-level OCR.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// can be specified as a "+" separated string (e.g. "fra+eng").
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns one raw record per recognized text line. Tesseract reports
// axis-aligned boxes, so each quad holds the four rectangle corners;
// confidences are rescaled from percent to [0, 1].
func (c *Client) Recognize(imageData []byte) ([]model.RawRecord, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	records := make([]model.RawRecord, 0, len(boxes))
	for i, box := range boxes {
		confidence := box.Confidence / 100
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}
		records = append(records, model.RawRecord{
			Index:      i,
			Text:       box.Word,
			Confidence: confidence,
			Quad:       rectQuad(float64(box.Box.Min.X), float64(box.Box.Min.Y), float64(box.Box.Dx()), float64(box.Box.Dy())),
		})
	}
	return records, nil
}
