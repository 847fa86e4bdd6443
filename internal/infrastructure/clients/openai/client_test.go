package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/pkg/config"
)

func TestParseClassificationPayload_Valid(t *testing.T) {
	raw := `{
		"labels": ["migraine", "tension headache"],
		"scores": [0.82, 0.41]
	}`

	payload, err := parseClassificationPayload([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(payload.Labels))
	}
	if payload.Labels[0] != "migraine" {
		t.Errorf("wrong first label: %s", payload.Labels[0])
	}
	if payload.Scores[1] != 0.41 {
		t.Errorf("wrong second score: %f", payload.Scores[1])
	}
}

func TestParseClassificationPayload_LengthMismatch(t *testing.T) {
	raw := `{"labels": ["migraine", "flu"], "scores": [0.82]}`

	if _, err := parseClassificationPayload([]byte(raw)); err == nil {
		t.Fatal("expected error for label/score length mismatch")
	}
}

func TestBuildClassifierUserPrompt_ListsAllLabels(t *testing.T) {
	prompt := buildClassifierUserPrompt("pounding head pain", []string{"migraine", "sinus infection"})

	if !strings.Contains(prompt, "pounding head pain") {
		t.Error("prompt missing symptom text")
	}
	if !strings.Contains(prompt, "- migraine\n") || !strings.Contains(prompt, "- sinus infection\n") {
		t.Errorf("prompt missing candidate labels: %s", prompt)
	}
	if !strings.Contains(prompt, "These symptoms are consistent with <label>.") {
		t.Error("prompt missing hypothesis template")
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(&config.OpenAIConfig{
		APIKey:         "test-key",
		Model:          "gpt-4o-mini",
		RateLimitRPM:   -1,
		RateLimitBurst: 0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.baseURL = baseURL
	return client
}

func classifierResponse(text string) string {
	envelope := map[string]interface{}{
		"output": []map[string]interface{}{
			{
				"content": []map[string]string{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
	data, _ := json.Marshal(envelope)
	return string(data)
}

func TestClassify_ParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("wrong auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(classifierResponse(`{"labels": ["migraine", "flu"], "scores": [0.9, 0.2]}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Classify(context.Background(), "pounding headache with nausea", []string{"migraine", "flu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Label != "migraine" || results[0].Score != 0.9 {
		t.Errorf("wrong top result: %+v", results[0])
	}
}

func TestClassify_StripsMarkdownFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := "```json\n{\"labels\": [\"migraine\"], \"scores\": [0.7]}\n```"
		w.Write([]byte(classifierResponse(text)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Classify(context.Background(), "headache", []string{"migraine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Score != 0.7 {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestClassify_DropsInventedLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(classifierResponse(`{"labels": ["migraine", "brain tumor"], "scores": [0.8, 1.4]}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Classify(context.Background(), "headache", []string{"migraine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected invented label to be dropped, got %+v", results)
	}
	if results[0].Label != "migraine" {
		t.Errorf("wrong label kept: %s", results[0].Label)
	}
}

func TestClassify_ClampsScores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(classifierResponse(`{"labels": ["migraine", "flu"], "scores": [1.7, -0.3]}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	results, err := client.Classify(context.Background(), "headache", []string{"migraine", "flu"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Score != 1.0 {
		t.Errorf("expected score clamped to 1.0, got %f", results[0].Score)
	}
	if results[1].Score != 0.0 {
		t.Errorf("expected score clamped to 0.0, got %f", results[1].Score)
	}
}

func TestClassify_UnauthorizedIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Classify(context.Background(), "headache", []string{"migraine"})
	if !errors.Is(err, providers.ErrClassifierUnavailable) {
		t.Fatalf("expected ErrClassifierUnavailable, got %v", err)
	}
}

func TestClassify_ServerErrorIsNotUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Classify(context.Background(), "headache", []string{"migraine"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, providers.ErrClassifierUnavailable) {
		t.Fatal("server errors should stay retryable, not unavailable")
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(&config.OpenAIConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestEnsureOpenAIMetrics_ConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*openAIMetrics, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ensureOpenAIMetrics()
		}(i)
	}
	wg.Wait()

	if results[0] == nil {
		t.Fatal("expected metrics to initialize")
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("call %d returned a different metrics instance", i)
		}
	}
}
