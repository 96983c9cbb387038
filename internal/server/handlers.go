package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stock-advisor/internal/advisor"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/market"
	"stock-advisor/internal/scoring"
	"stock-advisor/internal/types"
)

// defaultHistoryPeriod is the chart window when the client does not ask for
// a specific one.
const defaultHistoryPeriod = "1y"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStocks resolves a free-text query (or a comma-separated symbol
// list) to named stocks. Symbols without a company profile are skipped.
func (s *Server) handleStocks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if s.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "symbol search is not configured"})
		return
	}

	ctx := c.Request.Context()
	stocks := make([]types.SymbolMatch, 0)
	for _, symbol := range s.symbolsFor(ctx, query) {
		profile, err := s.searcher.Profile(ctx, symbol)
		if err != nil {
			logger.Warn(ctx, "Skipping symbol without profile", "symbol", symbol, "error", err.Error())
			continue
		}
		if profile.Name == "" {
			continue
		}
		stocks = append(stocks, types.SymbolMatch{
			Symbol: symbol,
			Name:   profile.Name,
			Logo:   profile.Logo,
		})
	}

	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

// symbolsFor turns the query into candidate symbols: a comma-separated
// query is taken as literal symbols, anything else goes through search.
func (s *Server) symbolsFor(ctx context.Context, query string) []string {
	if strings.Contains(query, ",") {
		parts := strings.Split(query, ",")
		symbols := make([]string, 0, len(parts))
		for _, part := range parts {
			if symbol := strings.ToUpper(strings.TrimSpace(part)); symbol != "" {
				symbols = append(symbols, symbol)
			}
		}
		return symbols
	}

	matches, err := s.searcher.Search(ctx, query)
	if err != nil {
		logger.ErrorWithErr(ctx, "Symbol search failed", err, "query", query)
		return nil
	}
	symbols := make([]string, 0, len(matches))
	for _, match := range matches {
		symbols = append(symbols, match.Symbol)
	}
	return symbols
}

func (s *Server) handleHistory(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	period := c.DefaultQuery("period", defaultHistoryPeriod)

	candles, err := s.market.History(c.Request.Context(), symbol, period)
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no historical data found for " + symbol + " over " + period})
			return
		}
		logger.ErrorWithErr(c.Request.Context(), "History fetch failed", err, "symbol", symbol, "period", period)
		c.JSON(http.StatusBadGateway, gin.H{"error": "price history is unavailable"})
		return
	}
	if len(candles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no historical data found for " + symbol + " over " + period})
		return
	}

	series := types.HistorySeries{
		Symbol: symbol,
		Dates:  make([]string, 0, len(candles)),
		Prices: make([]float64, 0, len(candles)),
	}
	for _, candle := range candles {
		series.Dates = append(series.Dates, candle.Date.Format("2006-01-02"))
		series.Prices = append(series.Prices, candle.Close)
	}

	c.JSON(http.StatusOK, series)
}

type analyzeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must include a symbol"})
		return
	}

	report, err := s.advisor.Analyze(c.Request.Context(), req.Symbol)
	if err != nil {
		c.JSON(analyzeStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// analyzeStatus maps analysis failures to response codes: bad input is the
// client's problem, a dead upstream is a gateway problem.
func analyzeStatus(err error) int {
	switch {
	case errors.Is(err, advisor.ErrEmptySymbol) || scoring.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, scoring.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
