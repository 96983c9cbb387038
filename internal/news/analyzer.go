package news

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/scoring"
	"stock-advisor/internal/trace"
	"stock-advisor/internal/types"
)

// Analyzer turns article text into a sentiment score and a headline
// summary using language models. Sentiment and summary can run on
// different providers.
type Analyzer struct {
	sentimentGen interfaces.Generator
	summaryGen   interfaces.Generator
}

func NewAnalyzer(sentimentGen, summaryGen interfaces.Generator) *Analyzer {
	return &Analyzer{
		sentimentGen: sentimentGen,
		summaryGen:   summaryGen,
	}
}

// ScoreSentiment rates the combined news text on the advisory scale where
// 0 reads as strong sell, 50 as hold and 100 as strong buy. Empty text is
// neutral by definition. Model output that contains no number also falls
// back to neutral, since a rambling answer is indistinguishable from "no
// signal"; only a failed model call returns an error.
func (a *Analyzer) ScoreSentiment(ctx context.Context, newsText string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "score-sentiment")
	defer span.End()

	if strings.TrimSpace(newsText) == "" {
		logger.Debug(ctx, "No news text to score, returning neutral")
		return scoring.NeutralScore, nil
	}

	prompt := fmt.Sprintf(`You are a financial analyst.
Based on the following news, rate the sentiment for the stock on a scale of 0-100,
where 0 = Strong Sell, 50 = Hold, 100 = Strong Buy.

Only output the number.

News: %s`, newsText)

	out, err := a.sentimentGen.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("sentiment scoring: %w", err)
	}

	score, ok := parseScore(out)
	if !ok {
		logger.Warn(ctx, "Could not parse sentiment score, using neutral", "raw", truncate(out, 120))
		return scoring.NeutralScore, nil
	}

	// Clamp to the advisory scale
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// Summarize condenses the articles into a few key points.
func (a *Analyzer) Summarize(ctx context.Context, symbol string, articles []types.NewsArticle) (string, error) {
	ctx, span := trace.StartSpan(ctx, "summarize-news")
	defer span.End()

	lines := make([]string, 0, len(articles))
	for _, article := range articles {
		if article.Title == "" || article.Description == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", article.Title, article.Description))
	}
	if len(lines) == 0 {
		return "No significant news found.", nil
	}

	prompt := fmt.Sprintf(`Summarize the following latest news about %s into 2-3 key points. Be concise and objective.

News:
%s`, symbol, strings.Join(lines, "\n"))

	out, err := a.summaryGen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("news summary: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "Summary not available.", nil
	}
	return out, nil
}

// parseScore extracts a score from model output. The strict path expects
// the bare number the prompt asks for; the lenient path takes the first
// integer in the text, because models love to answer "Sentiment: 85/100".
func parseScore(out string) (float64, bool) {
	trimmed := strings.TrimSpace(out)
	if v, err := strconv.Atoi(trimmed); err == nil {
		return float64(v), true
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, true
	}

	start := -1
	for i, r := range trimmed {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			v, err := strconv.Atoi(trimmed[start:i])
			if err == nil {
				return float64(v), true
			}
			start = -1
		}
	}
	if start >= 0 {
		if v, err := strconv.Atoi(trimmed[start:]); err == nil {
			return float64(v), true
		}
	}
	return 0, false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
