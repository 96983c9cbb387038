package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"stock-advisor/internal/types"
)

// ErrNoData marks a symbol Yahoo knows nothing about, as opposed to a
// transport failure. Handlers map it to a not-found response.
var ErrNoData = errors.New("no market data for symbol")

// YahooSource serves quotes, daily history and fundamentals from Yahoo
// Finance. Yahoo needs no API key; the library manages its own session.
type YahooSource struct{}

func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// Quote returns the current price, falling back through the market states
// Yahoo reports: regular session, pre/post market, then the info endpoint.
func (s *YahooSource) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	if err := ctx.Err(); err != nil {
		return types.Quote{}, err
	}

	t, err := ticker.New(symbol)
	if err != nil {
		return types.Quote{}, fmt.Errorf("yahoo ticker %s: %w", symbol, err)
	}
	defer t.Close()

	out := types.Quote{Symbol: symbol}

	if q, err := t.Quote(); err == nil && q != nil {
		switch {
		case q.RegularMarketPrice > 0:
			out.Price = q.RegularMarketPrice
		case q.PostMarketPrice > 0:
			out.Price = q.PostMarketPrice
		case q.PreMarketPrice > 0:
			out.Price = q.PreMarketPrice
		}
	}

	info, err := t.Info()
	if err == nil && info != nil {
		if out.Price == 0 && info.CurrentPrice > 0 {
			out.Price = info.CurrentPrice
		}
		if info.RegularMarketPreviousClose > 0 {
			out.PrevClose = info.RegularMarketPreviousClose
		}
		if out.Price == 0 && out.PrevClose > 0 {
			out.Price = out.PrevClose
		}
	}

	if out.Price == 0 {
		if err != nil {
			return types.Quote{}, fmt.Errorf("yahoo quote %s: %w", symbol, err)
		}
		return types.Quote{}, fmt.Errorf("yahoo quote %s: %w", symbol, ErrNoData)
	}
	return out, nil
}

// History returns daily bars for the period (e.g. "90d", "6mo", "1y").
func (s *YahooSource) History(ctx context.Context, symbol, period string) ([]types.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo ticker %s: %w", symbol, err)
	}
	defer t.Close()

	bars, err := t.History(models.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo history %s period %s: %w", symbol, period, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo history %s period %s: %w", symbol, period, ErrNoData)
	}

	candles := make([]types.Candle, 0, len(bars))
	for _, bar := range bars {
		candles = append(candles, types.Candle{
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: int64(bar.Volume),
		})
	}
	return candles, nil
}

// Fundamentals derives per-share figures from Yahoo's valuation ratios.
// Trailing P/E and P/B are quoted against the same price, so
// eps = price / pe and book value = price / pb hold exactly.
func (s *YahooSource) Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error) {
	if err := ctx.Err(); err != nil {
		return types.Fundamentals{}, err
	}

	t, err := ticker.New(symbol)
	if err != nil {
		return types.Fundamentals{}, fmt.Errorf("yahoo ticker %s: %w", symbol, err)
	}
	defer t.Close()

	info, err := t.Info()
	if err != nil {
		return types.Fundamentals{}, fmt.Errorf("yahoo info %s: %w", symbol, err)
	}
	if info == nil {
		return types.Fundamentals{}, fmt.Errorf("yahoo info %s: %w", symbol, ErrNoData)
	}

	price := info.CurrentPrice
	if price <= 0 {
		price = info.RegularMarketPreviousClose
	}

	var out types.Fundamentals
	if info.TrailingPE > 0 {
		pe := info.TrailingPE
		out.PERatio = &pe
		if price > 0 {
			eps := price / pe
			out.EPS = &eps
		}
	}
	if info.PriceToBook > 0 {
		pb := info.PriceToBook
		out.PBRatio = &pb
		if price > 0 {
			bvps := price / pb
			out.BookValue = &bvps
		}
	}
	return out, nil
}
