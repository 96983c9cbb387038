package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock-advisor/internal/advisor"
	"stock-advisor/internal/config"
	"stock-advisor/internal/forecast"
	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/llm"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/market"
	"stock-advisor/internal/market/finnhub"
	"stock-advisor/internal/news"
	"stock-advisor/internal/server"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	_ = godotenv.Load()
	must(logger.Init())

	ctx := context.Background()

	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "Config file not found, using defaults", "path", *configPath)
		cfg = config.Default()
	} else {
		must(err)
	}

	// Yahoo backs quotes, history and fundamentals, with a TTL cache in
	// front. Finnhub fills fundamentals gaps and powers symbol search.
	var marketData interfaces.MarketData = market.NewCached(
		market.NewYahooSource(),
		time.Duration(cfg.Market.QuoteCacheSeconds)*time.Second,
	)

	var searcher interfaces.SymbolSearcher
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		client := finnhub.New(key)
		if err := client.Ping(ctx); err != nil {
			logger.Warn(ctx, "Finnhub key check failed, search may not work", "error", err.Error())
		}
		searcher = client
		marketData = market.WithFundamentalsFallback(marketData, client)
	} else {
		logger.Warn(ctx, "FINNHUB_API_KEY not set, symbol search disabled")
	}

	forecaster := forecast.NewLinearForecaster(cfg.Forecast.LookbackBars, cfg.Forecast.MaxDriftPct)

	sentimentGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Sentiment)
	must(err)
	summaryGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Summary)
	must(err)
	explainGen, err := llm.ForRole(ctx, cfg, cfg.LLM.Roles.Explanation)
	must(err)

	var newsClient *news.APIClient
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		newsClient = news.NewAPIClient(key, cfg.News.PageSize, news.WithDomains(cfg.News.Domains))
	} else {
		logger.Warn(ctx, "NEWS_API_KEY not set, relying on the scraper fallback")
	}
	newsService := news.NewService(newsClient, news.NewAnalyzer(sentimentGen, summaryGen), news.ServiceConfigFrom(cfg))

	adv := advisor.New(cfg, marketData, forecaster, newsService, searcher, advisor.NewLLMExplainer(explainGen))

	srv := server.New(cfg, adv, marketData, searcher)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal(err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Shutdown failed", err)
	}
	_ = logger.Shutdown(shutdownCtx)
}
