package interfaces

import (
	"context"

	"stock-advisor/internal/types"
)

// MarketData supplies quotes, daily history and per-share fundamentals for
// a symbol.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (types.Quote, error)
	History(ctx context.Context, symbol, period string) ([]types.Candle, error)
	Fundamentals(ctx context.Context, symbol string) (types.Fundamentals, error)
}
