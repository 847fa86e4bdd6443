package openai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const hypothesisTemplate = "These symptoms are consistent with %s."

const classifierSystemPrompt = `You are a zero-shot medical text classifier. You receive a symptom description and a list of candidate condition labels. For each label, score how well the hypothesis "These symptoms are consistent with <label>." is entailed by the description, as a number between 0 and 1. Return ONLY valid JSON with this schema:
{
  "labels": string[] (the candidate labels ordered from highest to lowest score),
  "scores": number[] (the score for each label, same order)
}
Score every candidate label exactly once. Do not add labels that were not provided. Do not include medical advice, diagnosis, or any text outside the JSON.`

// classificationPayload is the JSON body the model is instructed to return.
type classificationPayload struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func buildClassifierUserPrompt(text string, candidateLabels []string) string {
	var b strings.Builder
	b.WriteString("Symptom description: ")
	b.WriteString(text)
	b.WriteString("\nCandidate labels:\n")
	for _, label := range candidateLabels {
		fmt.Fprintf(&b, "- %s\n", label)
	}
	fmt.Fprintf(&b, "Hypothesis template: %q\n", fmt.Sprintf(hypothesisTemplate, "<label>"))
	return b.String()
}

func parseClassificationPayload(data []byte) (*classificationPayload, error) {
	var payload classificationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse classification payload: %w", err)
	}
	if len(payload.Labels) != len(payload.Scores) {
		return nil, fmt.Errorf("label/score length mismatch: %d labels, %d scores", len(payload.Labels), len(payload.Scores))
	}
	return &payload, nil
}
