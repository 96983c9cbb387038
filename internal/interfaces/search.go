package interfaces

import (
	"context"

	"stock-advisor/internal/types"
)

// SymbolSearcher resolves free-text queries to tradable symbols and looks up
// company profiles.
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]types.SymbolMatch, error)
	Profile(ctx context.Context, symbol string) (types.CompanyProfile, error)
}
