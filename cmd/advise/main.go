package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stock-advisor/internal/advisor"
	"stock-advisor/internal/config"
	"stock-advisor/internal/forecast"
	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/llm"
	"stock-advisor/internal/market"
	"stock-advisor/internal/market/finnhub"
	"stock-advisor/internal/news"
	"stock-advisor/internal/types"
)

const analysisTimeout = 2 * time.Minute

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to analyze")
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	asJSON := flag.Bool("json", false, "print the raw report JSON instead of the summary")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: advise -symbol AAPL [-config config.yaml] [-json]")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	adv, err := buildAdvisor(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build advisor: %v\n", err)
		os.Exit(1)
	}

	report, err := adv.Analyze(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	printReport(report)
}

// buildAdvisor wires the same pipeline the HTTP server uses.
func buildAdvisor(ctx context.Context, cfg *config.Config) (interfaces.Advisor, error) {
	var marketData interfaces.MarketData = market.NewCached(
		market.NewYahooSource(),
		time.Duration(cfg.Market.QuoteCacheSeconds)*time.Second,
	)

	var searcher interfaces.SymbolSearcher
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		client := finnhub.New(key)
		searcher = client
		marketData = market.WithFundamentalsFallback(marketData, client)
	}

	sentimentGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Sentiment)
	if err != nil {
		return nil, err
	}
	summaryGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Summary)
	if err != nil {
		return nil, err
	}
	explainGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Explanation)
	if err != nil {
		return nil, err
	}

	var newsClient *news.APIClient
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		newsClient = news.NewAPIClient(key, cfg.News.PageSize, news.WithDomains(cfg.News.Domains))
	}
	newsService := news.NewService(newsClient, news.NewAnalyzer(sentimentGen, summaryGen), news.ServiceConfigFrom(cfg))

	forecaster := forecast.NewLinearForecaster(cfg.Forecast.LookbackBars, cfg.Forecast.MaxDriftPct)

	return advisor.New(cfg, marketData, forecaster, newsService, searcher, advisor.NewLLMExplainer(explainGen)), nil
}

func printReport(r *types.AnalysisReport) {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  %s  —  %s (%.1f/100)\n", r.Symbol, r.Recommendation, r.FinalScore)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  Last Close:        %.2f\n", r.LastClose)
	if r.PredictedClose != nil {
		fmt.Printf("  Predicted Close:   %.2f\n", *r.PredictedClose)
	}
	fmt.Println("─────────────────────────────────────────────────────────────")
	fmt.Printf("  Trend Score:       %s\n", fmtScore(r.TrendScore))
	fmt.Printf("  Sentiment Score:   %.1f\n", r.SentimentScore)
	fmt.Printf("  Valuation Score:   %s\n", fmtScore(r.ValuationScore))

	if m := r.Metrics; m != nil {
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Printf("  PE Ratio:          %s\n", fmtMetric(m.PERatio))
		fmt.Printf("  PB Ratio:          %s\n", fmtMetric(m.PBRatio))
		fmt.Printf("  Volatility (ann.): %s\n", fmtMetric(m.Volatility))
		fmt.Printf("  Graham Number:     %s\n", fmtMetric(m.GrahamNumber))
		if m.Daily != nil {
			fmt.Printf("  Today:             O %.2f  H %.2f  L %.2f  Vol %d\n",
				m.Daily.Open, m.Daily.High, m.Daily.Low, m.Daily.Volume)
		}
	}

	if r.NewsSummary != "" {
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Println("  Latest News:")
		fmt.Println(indent(r.NewsSummary))
	}
	if r.Explanation != "" {
		fmt.Println("─────────────────────────────────────────────────────────────")
		fmt.Println("  Why:")
		fmt.Println(indent(r.Explanation))
	}
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  Generated at %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
}

func fmtScore(v *float64) string {
	if v == nil {
		return "unavailable"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtMetric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", *v)
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
