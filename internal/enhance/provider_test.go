// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package enhance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"google.golang.org/genai"
)

func TestHTTPProvider_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{"success", http.StatusOK, `{"success":true,"text":"summary"}`, "summary", nil},
		{"service error", http.StatusOK, `{"success":false,"error":"quota"}`, "", ErrUnsuccessful},
		{"http error", http.StatusInternalServerError, `boom`, "", ErrUnsuccessful},
		{"malformed", http.StatusOK, `{{`, "", ErrMalformedResponse},
		{"oversized body", http.StatusOK, `{"success":true,"text":"` + strings.Repeat("a", maxResponseBodySize) + `"}`, "", ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Request
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode request: %v", err)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewHTTPProvider(server.URL, "", time.Second)
			ctxStats := BuildContext(ptr(sampleResult()), 0, 0)
			text, err := p.Summarize(context.Background(), Request{Question: "why?", Context: ctxStats})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if text != tt.want {
				t.Errorf("text = %q, want %q", text, tt.want)
			}
			if got.Question != "why?" || got.Context.MessageCount != 9 {
				t.Errorf("request = %+v", got)
			}
		})
	}
}

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func TestGeminiProvider_Summarize(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Launch "}, {Text: "leads."}}},
		}},
	}}
	p := newGeminiProvider(gen, "")

	text, err := p.Summarize(context.Background(), Request{
		Question: "what leads?",
		Context:  BuildContext(ptr(sampleResult()), 1, 1),
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if text != "Launch leads." {
		t.Errorf("text = %q", text)
	}
	if gen.model != DefaultGeminiModel {
		t.Errorf("model = %q, want %q", gen.model, DefaultGeminiModel)
	}

	prompt := gen.contents[0].Parts[0].Text
	if !strings.Contains(prompt, "what leads?") || !strings.Contains(prompt, `"Launch"`) {
		t.Errorf("prompt missing question or stats: %s", prompt)
	}
	if strings.Contains(prompt, "Memes") {
		t.Error("prompt should only carry the bounded topic list")
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	p := newGeminiProvider(&fakeGenerator{resp: &genai.GenerateContentResponse{}}, "m")
	if _, err := p.Summarize(context.Background(), Request{Question: "q"}); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("no candidates: error = %v", err)
	}

	sentinel := errors.New("quota")
	p = newGeminiProvider(&fakeGenerator{err: sentinel}, "m")
	if _, err := p.Summarize(context.Background(), Request{Question: "q"}); !errors.Is(err, sentinel) {
		t.Errorf("generate error = %v, want wrapped sentinel", err)
	}
}

func TestBuildContext_NeverCarriesIDs(t *testing.T) {
	data, err := json.Marshal(BuildContext(ptr(sampleResult()), 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "userId") {
		t.Errorf("context leaks user ids: %s", data)
	}
}

func ptr[T any](v T) *T { return &v }
