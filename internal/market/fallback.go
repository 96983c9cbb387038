package market

import (
	"context"

	"stock-advisor/internal/interfaces"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/types"
)

// FundamentalsSource supplies per-share fundamentals only. The Finnhub
// metrics client satisfies it without carrying the full market surface.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error)
}

// FallbackFundamentals serves quotes and history from the primary source
// and fills fundamentals from a backup provider when the primary has none.
// Yahoo omits valuation ratios for plenty of small caps that Finnhub still
// covers.
type FallbackFundamentals struct {
	primary interfaces.MarketData
	backup  FundamentalsSource
}

func WithFundamentalsFallback(primary interfaces.MarketData, backup FundamentalsSource) *FallbackFundamentals {
	return &FallbackFundamentals{primary: primary, backup: backup}
}

func (f *FallbackFundamentals) Quote(ctx context.Context, symbol string) (types.Quote, error) {
	return f.primary.Quote(ctx, symbol)
}

func (f *FallbackFundamentals) History(ctx context.Context, symbol, period string) ([]types.Candle, error) {
	return f.primary.History(ctx, symbol, period)
}

func (f *FallbackFundamentals) Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error) {
	funds, err := f.primary.Fundamentals(ctx, symbol)
	if err == nil && !missingPerShare(funds) {
		return funds, nil
	}
	if err != nil {
		logger.Warn(ctx, "Primary fundamentals failed, trying backup", "symbol", symbol, "error", err.Error())
	}

	backup, backupErr := f.backup.Fundamentals(ctx, symbol)
	if backupErr != nil {
		if err != nil {
			// Both sides failed; report the primary failure.
			return types.Fundamentals{}, err
		}
		// Primary answered with partial data, keep it.
		return funds, nil
	}

	if err != nil {
		return backup, nil
	}
	return merge(funds, backup), nil
}

// missingPerShare reports whether the figures the Graham estimate needs
// are absent.
func missingPerShare(f types.Fundamentals) bool {
	return f.EPS == nil || f.BookValue == nil
}

// merge keeps primary values and fills gaps from backup.
func merge(primary, backup types.Fundamentals) types.Fundamentals {
	out := primary
	if out.EPS == nil {
		out.EPS = backup.EPS
	}
	if out.BookValue == nil {
		out.BookValue = backup.BookValue
	}
	if out.PERatio == nil {
		out.PERatio = backup.PERatio
	}
	if out.PBRatio == nil {
		out.PBRatio = backup.PBRatio
	}
	return out
}
