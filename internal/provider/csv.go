package provider

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// CSVProvider reads price history from one CSV file per symbol, located at
// {dir}/{symbol}.csv with a header row of time,open,high,low,close,volume and
// RFC3339 timestamps. Rows need not be pre-sorted.
type CSVProvider struct {
	dir    string
	logger *logger.Logger
}

// NewCSVProvider creates a provider rooted at dir.
func NewCSVProvider(dir string, log *logger.Logger) *CSVProvider {
	return &CSVProvider{
		dir:    dir,
		logger: log,
	}
}

type csvBar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// GetPriceHistory implements Provider.
func (p *CSVProvider) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.dir, symbol+".csv")

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeProviderFailed, err, "failed to open price file for %s", symbol)
	}
	defer file.Close()

	var rows []csvBar
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeProviderFailed, err, "failed to parse price file for %s", symbol)
	}

	bars := make([]types.PriceBar, 0, len(rows))

	for _, row := range rows {
		if row.Time.Before(start) || row.Time.After(end) {
			continue
		}

		bars = append(bars, types.PriceBar{
			Symbol: symbol,
			Time:   row.Time,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoData, "no price history for %s in range", symbol)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	p.logger.Debug("loaded price history",
		zap.String("symbol", symbol),
		zap.Int("bars", len(bars)))

	return bars, nil
}
