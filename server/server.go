// Package server exposes the extraction engine over HTTP in the shape
// of the original service: an API-key-guarded /extract upload endpoint
// returning a {status, data} envelope, plus a listing of stored
// extraction summaries.
package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"facture"
	"facture/model"
	"facture/ocr"
)

// apiKeyHeader is the request header carrying the client credential.
const apiKeyHeader = "x-api-key"

// Recognizer is the upstream OCR producer contract: a finite,
// order-independent record set per image. ocr.AzureClient satisfies it
// directly; the Tesseract client can be adapted with a closure.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) ([]model.RawRecord, error)
}

// RecognizerFunc adapts a function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, imageData []byte) ([]model.RawRecord, error)

// Recognize calls the wrapped function.
func (f RecognizerFunc) Recognize(ctx context.Context, imageData []byte) ([]model.RawRecord, error) {
	return f(ctx, imageData)
}

// Config holds the service configuration, read from the environment.
type Config struct {
	Port        string
	APIKey      string
	DatabaseURL string
	AzureVision struct {
		Endpoint string
		Key      string
	}
}

// LoadConfig reads the configuration from a .env file (when present)
// and the process environment. Defaults match the original service:
// port 8080 and a local test API key.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        os.Getenv("PORT"),
		APIKey:      os.Getenv("OCR_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	cfg.AzureVision.Endpoint = os.Getenv("AZURE_VISION_ENDPOINT")
	cfg.AzureVision.Key = os.Getenv("AZURE_VISION_KEY")

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "test_secret_key"
	}
	return cfg
}

// Server wires the engine, an OCR producer and an optional store
// behind a gin router.
type Server struct {
	engine     *facture.Engine
	recognizer Recognizer
	store      *Store
	apiKey     string
	router     *gin.Engine
}

// New creates a Server. store may be nil, in which case extraction
// summaries are not persisted and /extractions reports an empty list.
func New(engine *facture.Engine, recognizer Recognizer, store *Store, apiKey string) *Server {
	s := &Server{
		engine:     engine,
		recognizer: recognizer,
		store:      store,
		apiKey:     apiKey,
		router:     gin.Default(),
	}

	s.router.GET("/", s.handleRoot)

	authed := s.router.Group("/", s.requireAPIKey)
	authed.POST("/extract", s.handleExtract)
	authed.GET("/extractions", s.handleList)

	return s
}

// Handler returns the underlying HTTP handler, for tests and custom
// server setups.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

func (s *Server) requireAPIKey(c *gin.Context) {
	if c.GetHeader(apiKeyHeader) != s.apiKey {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Could not validate credentials"})
		return
	}
	c.Next()
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Invoice Extraction API is running"})
}

func (s *Server) handleExtract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "missing file upload"})
		return
	}

	suffix := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch suffix {
	case ".jpg", ".jpeg", ".png":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unsupported file type: " + suffix})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// Recognition reads the enhanced copy; the original upload is
	// kept untouched.
	if enhanced, err := ocr.Enhance(imageData); err == nil {
		imageData = enhanced
	}

	records, err := s.recognizer.Recognize(c.Request.Context(), imageData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	result := s.engine.Extract(records)

	if s.store != nil {
		if err := s.store.Save(newExtraction(fileHeader.Filename, result)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": result})
}

func (s *Server) handleList(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, []Extraction{})
		return
	}

	extractions, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, extractions)
}
