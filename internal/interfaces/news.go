package interfaces

import (
	"context"

	"stock-advisor/internal/types"
)

// NewsAnalyst fetches recent coverage for a company and reduces it to a
// sentiment score and a short summary. A nil Sentiment in the digest means
// the scorer could not produce a value; the caller decides how to degrade.
type NewsAnalyst interface {
	Digest(ctx context.Context, symbol, company string) (types.NewsDigest, error)
}
