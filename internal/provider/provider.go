// Package provider supplies ordered daily price history for symbols. The
// engine treats any provider failure as "no data for this symbol" at the run
// level, so implementations report errors honestly rather than substituting
// fallback data.
package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/signal-engine/internal/types"
)

// Provider returns the chronological PriceBar sequence for one symbol within
// [start, end] inclusive. An empty range is an ErrCodeNoData error, not an
// empty slice, so callers can distinguish outages from thin history.
type Provider interface {
	GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error)
}
