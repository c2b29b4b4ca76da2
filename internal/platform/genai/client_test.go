package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gemini-3-flash-preview",
		Temperature: 0.8,
	}, zerolog.New(os.Stderr))
}

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key query param")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{{
				Content: content{Parts: []part{{Text: "病程紀錄 (Progress Note)\nS: ..."}}},
			}},
		})
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "prompt text", "system text")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.HasPrefix(text, "病程紀錄 (Progress Note)") {
		t.Errorf("unexpected text: %q", text)
	}
	if gotPath != "/v1beta/models/gemini-3-flash-preview:generateContent" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "prompt text" {
		t.Errorf("unexpected request contents: %+v", gotBody.Contents)
	}
	if gotBody.SystemInstruction == nil || gotBody.SystemInstruction.Parts[0].Text != "system text" {
		t.Errorf("unexpected system instruction: %+v", gotBody.SystemInstruction)
	}
	if gotBody.GenerationConfig.Temperature != 0.8 {
		t.Errorf("unexpected temperature: %v", gotBody.GenerationConfig.Temperature)
	}
}

func TestGenerateJoinsMultipleParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{{
				Content: content{Parts: []part{{Text: "第一段"}, {Text: "第二段"}}},
			}},
		})
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "p", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "第一段第二段" {
		t.Errorf("expected concatenated parts, got %q", text)
	}
}

func TestGenerateDecodesMislabeledContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []candidate{{
				Content: content{Parts: []part{{Text: "內容"}}},
			}},
		})
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "p", "")
	if err != nil {
		t.Fatal(err)
	}
	if text != "內容" {
		t.Errorf("response body must decode regardless of the content type label, got %q", text)
	}
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(generateResponse{
			Error: &apiError{Code: 429, Message: "quota exceeded", Status: "RESOURCE_EXHAUSTED"},
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), "p", "")
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected API message in error, got %v", err)
	}
}

func TestGenerateOrFallbackErrorPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := testClient(srv.URL).GenerateOrFallback(context.Background(), "p", "")
	if got != FallbackError {
		t.Errorf("expected %q, got %q", FallbackError, got)
	}
}

func TestGenerateOrFallbackEmptyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	got := testClient(srv.URL).GenerateOrFallback(context.Background(), "p", "")
	if got != FallbackEmpty {
		t.Errorf("expected %q, got %q", FallbackEmpty, got)
	}
}
