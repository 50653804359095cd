package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"

	"facture/model"
)

// AzureClient produces raw line records from the Azure Computer Vision
// OCR endpoint. It satisfies the same producer contract as the
// Tesseract client but needs no local engine.
type AzureClient struct {
	client *computervision.BaseClient
}

// NewAzureClient creates a producer against a Computer Vision endpoint.
func NewAzureClient(endpoint, apiKey string) *AzureClient {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureClient{client: &client}
}

// Recognize performs OCR on image data and returns one raw record per
// recognized line. Azure reports axis-aligned "x,y,w,h" boxes, so each
// quad holds the four rectangle corners. The service gives no per-line
// confidence; records carry 0, which the downstream contract permits.
func (a *AzureClient) Recognize(ctx context.Context, imageData []byte) ([]model.RawRecord, error) {
	imageReader := io.NopCloser(bytes.NewReader(imageData))

	result, err := a.client.RecognizePrintedTextInStream(
		ctx,
		true,
		imageReader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	var records []model.RawRecord
	if result.Regions == nil {
		return records, nil
	}

	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			box, ok := parseAzureBox(line.BoundingBox)
			if !ok || line.Words == nil {
				continue
			}

			var text strings.Builder
			for _, word := range *line.Words {
				if word.Text == nil {
					continue
				}
				if text.Len() > 0 {
					text.WriteString(" ")
				}
				text.WriteString(*word.Text)
			}

			records = append(records, model.RawRecord{
				Index: len(records),
				Text:  strings.TrimSpace(text.String()),
				Quad:  rectQuad(box[0], box[1], box[2], box[3]),
			})
		}
	}
	return records, nil
}

// parseAzureBox parses the service's "x,y,w,h" bounding box string.
func parseAzureBox(s *string) ([4]float64, bool) {
	var box [4]float64
	if s == nil {
		return box, false
	}
	parts := strings.Split(*s, ",")
	if len(parts) < 4 {
		return box, false
	}
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return box, false
		}
		box[i] = float64(v)
	}
	return box, true
}

// rectQuad builds the corner quad of an axis-aligned box.
func rectQuad(x, y, w, h float64) model.Quad {
	return model.Quad{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}
