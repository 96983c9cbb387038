package advisor

import (
	"context"
	"fmt"
	"strings"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/types"
)

// maxNewsChars bounds the news text embedded in the explanation prompt.
const maxNewsChars = 400

// LLMExplainer turns a finished report into a short justification using a
// text-completion provider. It only restates figures already in the report.
type LLMExplainer struct {
	gen interfaces.Generator
}

func NewLLMExplainer(gen interfaces.Generator) *LLMExplainer {
	return &LLMExplainer{gen: gen}
}

var _ interfaces.Explainer = (*LLMExplainer)(nil)

func (e *LLMExplainer) Explain(ctx context.Context, report types.AnalysisReport) (string, error) {
	out, err := e.gen.Generate(ctx, explainPrompt(report))
	if err != nil {
		return "", fmt.Errorf("generate explanation: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "Explanation not available.", nil
	}
	return out, nil
}

func explainPrompt(report types.AnalysisReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a stock analyst assistant.\n")
	fmt.Fprintf(&b, "Task: Explain in 3-5 sentences max why the recommendation for %s is %q.\n", report.Symbol, report.Recommendation)
	fmt.Fprintf(&b, "Only use:\n")
	fmt.Fprintf(&b, "- Price trend (last close: %.2f, predicted close: %s)\n", report.LastClose, fmtOptional(report.PredictedClose))
	fmt.Fprintf(&b, "- Trend score: %s\n", fmtOptional(report.TrendScore))
	fmt.Fprintf(&b, "- Sentiment score: %g\n", report.SentimentScore)
	fmt.Fprintf(&b, "- Final score: %g\n", report.FinalScore)
	fmt.Fprintf(&b, "- Key news (summarized below)\n")
	fmt.Fprintf(&b, "News: %s\n", truncate(newsText(report.Articles), maxNewsChars))
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Do NOT mention unrelated companies or crypto.\n")
	fmt.Fprintf(&b, "- Do NOT invent extra details. Be factual and concise. Use simple language.\n")
	fmt.Fprintf(&b, "- Explain it in bullet points. Stay focused on %s.\n", report.Symbol)
	return b.String()
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "unavailable"
	}
	return fmt.Sprintf("%.2f", *v)
}

// newsText flattens article headlines into one block, the same text the
// sentiment model saw.
func newsText(articles []types.NewsArticle) string {
	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.Description == "" {
			continue
		}
		parts = append(parts, a.Title+" "+a.Description)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
