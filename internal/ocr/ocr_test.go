package ocr

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	pdfBytes = []byte("%PDF-1.4\n% not a real document\n")
)

func TestCheck(t *testing.T) {
	c := NewClient(Config{MaxFileSize: 128}, nil, nil)

	if mime, err := c.Check(pngBytes); err != nil || mime != "image/png" {
		t.Fatalf("expected image/png, got %q / %v", mime, err)
	}
	if mime, err := c.Check(pdfBytes); err != nil || mime != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q / %v", mime, err)
	}
	if _, err := c.Check([]byte("just some text")); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if _, err := c.Check(nil); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected empty file, got %v", err)
	}
	big := append([]byte("%PDF-1.4\n"), make([]byte, 200)...)
	if _, err := c.Check(big); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected a multipart file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "cv.png" || len(data) != len(pngBytes) {
			t.Errorf("unexpected upload %s (%d bytes)", header.Filename, len(data))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"text":"Jane Doe\nEngineer","metadata":{"pages":1}}`)
	}))
	defer srv.Close()

	c := NewClient(Config{ServiceURL: srv.URL, APIKey: "secret"}, srv.Client(), nil)
	res, err := c.Recognize(context.Background(), "cv.png", pngBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.Text, "Jane Doe") || res.Source != SourceService || res.MIME != "image/png" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRecognizeFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `{"error":"down"}`},
		{"empty text", http.StatusOK, `{"text":"   "}`},
		{"bad json", http.StatusOK, `<html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			c := NewClient(Config{ServiceURL: srv.URL}, srv.Client(), nil)
			if _, err := c.Recognize(context.Background(), "cv.png", pngBytes); !errors.Is(err, ErrOCRFailed) {
				t.Fatalf("expected ErrOCRFailed, got %v", err)
			}
		})
	}
}

func TestTextFallsBackToServiceForScannedPDF(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `{"text":"scanned text"}`)
	}))
	defer srv.Close()

	c := NewClient(Config{ServiceURL: srv.URL, PreferTextLayer: true}, srv.Client(), nil)
	res, err := c.Text(context.Background(), "cv.pdf", pdfBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || res.Source != SourceService {
		t.Fatalf("expected one service call, got %d (%s)", calls, res.Source)
	}
}

func TestNotConfigured(t *testing.T) {
	c := NewClient(Config{}, nil, nil)
	if _, err := c.Recognize(context.Background(), "cv.png", pngBytes); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestHasUsableText(t *testing.T) {
	if HasUsableText("  12 34 --  ") {
		t.Fatal("expected digits and punctuation to be unusable")
	}
	if !HasUsableText(strings.Repeat("word ", 20)) {
		t.Fatal("expected prose to be usable")
	}
}
