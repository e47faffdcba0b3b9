package utils

import (
	"fmt"
	"testing"
)

type ratioPayload struct {
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

func TestRepairJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Missing quotes around keys",
			input:    `{explanation: "fine", confidence: 0.9}`,
			expected: `{"explanation":"fine","confidence":0.9}`,
		},
		{
			name:     "Single quotes",
			input:    `{'explanation': 'fine', 'confidence': 0.9}`,
			expected: `{"explanation":"fine","confidence":0.9}`,
		},
		{
			name:     "Markdown code fence",
			input:    "```json\n{\"explanation\": \"fine\", \"confidence\": 0.9}\n```",
			expected: `{"explanation":"fine","confidence":0.9}`,
		},
	}

	for _, tc := range testCases {
		repaired, err := RepairJSON(tc.input)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if repaired != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.expected, repaired)
		}
	}
}

func TestParseHJSON(t *testing.T) {
	input := `{
		# a comment
		explanation: works without quotes
		confidence: 0.8
	}`
	out, err := ParseHJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fmt.Printf("HJSON normalized to: %s\n", out)

	var payload ratioPayload
	if _, err := SmartParse(out, &payload); err != nil {
		t.Fatalf("normalized output should be valid JSON: %v", err)
	}
	if payload.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", payload.Confidence)
	}
}

func TestSmartParseStrategies(t *testing.T) {
	// Strict JSON goes straight through.
	var a ratioPayload
	if _, err := SmartParse(`{"explanation": "x", "confidence": 1}`, &a); err != nil {
		t.Errorf("strict JSON should parse: %v", err)
	}

	// Broken JSON goes through repair.
	var b ratioPayload
	if _, err := SmartParse(`{"explanation": "x", "confidence": 1,}`, &b); err != nil {
		t.Errorf("trailing comma should be repaired: %v", err)
	}

	// Plain prose fails every strategy.
	var c ratioPayload
	if _, err := SmartParse(`this is not json in any dialect {{{`, &c); err == nil {
		t.Error("prose should fail all strategies")
	}
}
