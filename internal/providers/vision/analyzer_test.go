package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDescribeSendsInlineImage(t *testing.T) {
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Soft diffused lighting, pastel palette, centered composition."}]}}]}`))
	}))
	defer srv.Close()

	analyzer, err := NewGeminiAnalyzer(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiAnalyzer returned error: %v", err)
	}
	img := []byte{0x89, 'P', 'N', 'G'}
	got, err := analyzer.Describe(context.Background(), img, "image/png", "describe the style")
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if got != "Soft diffused lighting, pastel palette, centered composition." {
		t.Fatalf("Describe = %q", got)
	}

	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	inline := gotBody.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MimeType != "image/png" {
		t.Fatalf("inline data missing or wrong mime: %+v", inline)
	}
	if inline.Data != base64.StdEncoding.EncodeToString(img) {
		t.Fatal("image bytes were not base64-encoded verbatim")
	}
}

func TestDescribeRejectsEmptyImage(t *testing.T) {
	analyzer, _ := NewGeminiAnalyzer(GeminiOptions{APIKey: "k"})
	if _, err := analyzer.Describe(context.Background(), nil, "image/png", "x"); err == nil {
		t.Fatal("Describe succeeded with an empty image")
	}
}

func TestDescribeSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"unsupported image"}}`))
	}))
	defer srv.Close()

	analyzer, _ := NewGeminiAnalyzer(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	if _, err := analyzer.Describe(context.Background(), []byte{1}, "image/png", "x"); err == nil {
		t.Fatal("Describe succeeded despite provider error")
	}
}
