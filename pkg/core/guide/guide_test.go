package guide

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider returns a canned response or error.
type fakeProvider struct {
	response string
	err      error
}

func (p *fakeProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	return p.response, p.err
}

func (p *fakeProvider) AdaptInstructions(raw string) string { return raw }

func TestExplainStaticFallbackWithoutProvider(t *testing.T) {
	e := NewExplainer(nil, "")
	exp := e.Explain(context.Background(), "ROE", "15.23%")

	if exp.Source != "static" {
		t.Errorf("expected static source, got %q", exp.Source)
	}
	if !strings.Contains(exp.Markdown, "Return on Equity") {
		t.Error("ROE fallback should use the built-in text")
	}
	if !strings.Contains(exp.Markdown, "15.23%") {
		t.Error("current value should be mentioned")
	}
	if !strings.Contains(exp.HTML, "<") {
		t.Error("HTML rendering should produce markup")
	}
}

func TestExplainGenericStaticText(t *testing.T) {
	e := NewExplainer(nil, "")
	exp := e.Explain(context.Background(), "PEG Ratio", "N/A")

	if !strings.Contains(exp.Markdown, "PEG Ratio") {
		t.Error("generic fallback should name the ratio")
	}
	if strings.Contains(exp.Markdown, "N/A") {
		t.Error("an N/A value should not be echoed into the text")
	}
}

func TestExplainParsesSloppyLLMJSON(t *testing.T) {
	// Models wrap JSON in code fences and drop quotes; the lenient
	// parsing chain has to cope.
	p := &fakeProvider{response: "```json\n{explanation: \"**Quick Ratio** compares liquid assets to current liabilities.\", confidence: 0.9}\n```"}
	e := NewExplainer(p, "test-model")
	exp := e.Explain(context.Background(), "Quick Ratio", "1.10")

	if exp.Source != "llm" {
		t.Fatalf("expected llm source, got %q", exp.Source)
	}
	if !strings.Contains(exp.Markdown, "Quick Ratio") {
		t.Errorf("unexpected markdown: %q", exp.Markdown)
	}
}

func TestExplainFallsBackOnProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}
	e := NewExplainer(p, "test-model")
	exp := e.Explain(context.Background(), "ROA", "")

	if exp.Source != "static" {
		t.Errorf("provider error should fall back to static, got %q", exp.Source)
	}
	if !strings.Contains(exp.Markdown, "Return on Assets") {
		t.Error("ROA fallback should use the built-in text")
	}
}

func TestExplainFallsBackOnUnparseableResponse(t *testing.T) {
	p := &fakeProvider{response: "Sure! Here is a friendly explanation without any JSON at all."}
	e := NewExplainer(p, "test-model")
	exp := e.Explain(context.Background(), "Debt Ratio", "0.25")

	if exp.Source != "static" {
		t.Errorf("unparseable response should fall back to static, got %q", exp.Source)
	}
}
