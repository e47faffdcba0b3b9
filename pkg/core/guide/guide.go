package guide

import (
	"context"
	"fmt"
	"strings"

	"investilearn/pkg/core/llm"
	"investilearn/pkg/core/utils"
)

// Explanation is a beginner-friendly write-up of one financial ratio.
// Source is "llm" or "static" depending on which path produced it.
type Explanation struct {
	RatioName string `json:"ratio_name"`
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
	Source    string `json:"source"`
}

// Explainer produces ratio explanations, asking an LLM first and
// falling back to built-in texts when the model is unavailable or its
// answer cannot be parsed. Explain never returns an error.
type Explainer struct {
	provider llm.Provider
	model    string
}

// NewExplainer builds an Explainer. A nil provider means static-only.
func NewExplainer(provider llm.Provider, model string) *Explainer {
	return &Explainer{provider: provider, model: model}
}

const explainSystemPrompt = `You are a patient investing tutor. Explain financial ratios to a complete beginner in plain language. Respond with a JSON object: {"explanation": "<markdown text>", "confidence": <0..1>}.`

type explainResponse struct {
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

// Explain writes up the named ratio, optionally mentioning the
// company's current value for it.
func (e *Explainer) Explain(ctx context.Context, ratioName, formattedValue string) Explanation {
	if e.provider != nil {
		if md, ok := e.fromLLM(ctx, ratioName, formattedValue); ok {
			return Explanation{
				RatioName: ratioName,
				Markdown:  md,
				HTML:      utils.RenderHTML(md),
				Source:    "llm",
			}
		}
	}

	md := staticExplanation(ratioName, formattedValue)
	return Explanation{
		RatioName: ratioName,
		Markdown:  md,
		HTML:      utils.RenderHTML(md),
		Source:    "static",
	}
}

func (e *Explainer) fromLLM(ctx context.Context, ratioName, formattedValue string) (string, bool) {
	prompt := fmt.Sprintf("Explain the ratio %q to a beginner.", ratioName)
	if formattedValue != "" && formattedValue != "N/A" {
		prompt += fmt.Sprintf(" The company's current value is %s; say briefly what that level suggests.", formattedValue)
	}

	raw, err := e.provider.GenerateResponse(ctx, prompt, explainSystemPrompt, map[string]interface{}{
		"model": e.model,
	})
	if err != nil {
		fmt.Printf("[GUIDE] llm call failed for %s: %v\n", ratioName, err)
		return "", false
	}

	var resp explainResponse
	if _, err := utils.SmartParse(raw, &resp); err != nil {
		fmt.Printf("[GUIDE] llm response unparseable for %s: %v\n", ratioName, err)
		return "", false
	}
	if strings.TrimSpace(resp.Explanation) == "" {
		return "", false
	}
	return utils.CleanMarkdown(resp.Explanation), true
}

var staticTexts = map[string]string{
	"ROE": `**Return on Equity (ROE)** measures how much profit a company generates with the money shareholders have invested.

- **Formula:** Net Income / Shareholders' Equity
- **Higher is generally better:** a 15%+ ROE usually signals an efficient, profitable business.
- **Watch out:** heavy debt can inflate ROE, so check it alongside the Debt-to-Equity ratio.`,
	"ROA": `**Return on Assets (ROA)** shows how efficiently a company turns everything it owns into profit.

- **Formula:** Net Income / Total Assets
- **Higher is better:** asset-light businesses (software) run high ROA; capital-heavy ones (utilities) run low.
- **Compare within an industry**, not across industries.`,
}

func staticExplanation(ratioName, formattedValue string) string {
	md, ok := staticTexts[ratioName]
	if !ok {
		md = fmt.Sprintf(`**%s** is one of the standard ratios analysts use to judge a company's financial health.

Compare it against the company's own history and against direct competitors rather than reading it in isolation. A single period's number can mislead.`, ratioName)
	}
	if formattedValue != "" && formattedValue != "N/A" {
		md += fmt.Sprintf("\n\nThis company's current %s is **%s**.", ratioName, formattedValue)
	}
	return md
}
