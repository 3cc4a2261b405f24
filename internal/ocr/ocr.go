// Package ocr turns uploaded PDF and image files into raw text, either from
// the embedded text layer of digital PDFs or through the remote OCR service.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"docsense/internal/logging"
	"docsense/pkg/utils"
)

// DefaultMaxFileSize is the largest upload the OCR service accepts
const DefaultMaxFileSize = 10 << 20

var (
	ErrOCRFailed       = errors.New("ocr failed")
	ErrFileTooLarge    = errors.New("file exceeds the upload limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")
	ErrNotConfigured   = errors.New("ocr service url is not configured")
)

var allowedTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// Result mirrors the OCR service response
type Result struct {
	Text     string                 `json:"text"`
	Tables   []json.RawMessage      `json:"tables,omitempty"`
	Images   []json.RawMessage      `json:"images,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Filled in locally
	MIME   string `json:"mime"`
	Source string `json:"source"`
}

const (
	SourceService   = "ocr-service"
	SourceTextLayer = "pdf-text-layer"
)

// Config for Client
type Config struct {
	ServiceURL      string
	APIKey          string
	Timeout         time.Duration
	MaxFileSize     int64
	PreferTextLayer bool
}

// Client posts files to the OCR service
type Client struct {
	cfg    Config
	http   *http.Client
	logger logging.Logger
}

// NewClient creates a client; a nil httpClient gets one with cfg.Timeout
func NewClient(cfg Config, httpClient *http.Client, logger logging.Logger) *Client {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// Check enforces the size limit and sniffs the content type. It returns
// the detected MIME type on success.
func (c *Client) Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > c.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(data), c.cfg.MaxFileSize)
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Text returns the raw text of an upload. Digital PDFs are read from their
// text layer when enabled; everything else goes to the OCR service.
func (c *Client) Text(ctx context.Context, filename string, data []byte) (*Result, error) {
	mime, err := c.Check(data)
	if err != nil {
		return nil, err
	}

	if mime == "application/pdf" && c.cfg.PreferTextLayer {
		text, pages, err := PDFTextLayer(data)
		if err == nil && HasUsableText(text) {
			c.logger.Info("ocr.text_layer", map[string]interface{}{
				"filename": filename,
				"pages":    pages,
				"chars":    len(text),
			})
			return &Result{
				Text:     text,
				Metadata: map[string]interface{}{"pages": pages},
				MIME:     mime,
				Source:   SourceTextLayer,
			}, nil
		}
		c.logger.Debug("ocr.text_layer.skip", map[string]interface{}{
			"filename": filename,
			"error":    errString(err),
		})
	}

	return c.recognize(ctx, filename, mime, data)
}

// Recognize sends the file to the OCR service without trying the text layer
func (c *Client) Recognize(ctx context.Context, filename string, data []byte) (*Result, error) {
	mime, err := c.Check(data)
	if err != nil {
		return nil, err
	}
	return c.recognize(ctx, filename, mime, data)
}

func (c *Client) recognize(ctx context.Context, filename, mime string, data []byte) (*Result, error) {
	if c.cfg.ServiceURL == "" {
		return nil, ErrNotConfigured
	}
	start := time.Now()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create ocr request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ocr.request.failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrOCRFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrOCRFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("ocr.request.status", map[string]interface{}{
			"filename": filename,
			"status":   resp.StatusCode,
			"body":     utils.Truncate(string(raw), 200),
		})
		return nil, fmt.Errorf("%w: service returned %d", ErrOCRFailed, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrOCRFailed, err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, fmt.Errorf("%w: no text recognized", ErrOCRFailed)
	}
	result.MIME = mime
	result.Source = SourceService

	c.logger.Info("ocr.ok", map[string]interface{}{
		"filename":   filename,
		"mime":       mime,
		"chars":      len(result.Text),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return &result, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
