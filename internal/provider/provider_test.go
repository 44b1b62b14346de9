package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

type ProviderSuite struct {
	suite.Suite
	dir      string
	provider *CSVProvider
}

func (s *ProviderSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.provider = NewCSVProvider(s.dir, logger.NewNopLogger())
}

func (s *ProviderSuite) writeHistory(symbol string, days int) {
	path := filepath.Join(s.dir, symbol+".csv")

	content := "time,open,high,low,close,volume\n"
	for i := 0; i < days; i++ {
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		price := 100.0 + float64(i)
		content += fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%d\n",
			day.Format(time.RFC3339), price, price+1, price-1, price+0.5, 1000000+i)
	}

	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
}

func (s *ProviderSuite) TestLoadsOrderedHistory() {
	s.writeHistory("AAPL", 10)

	bars, err := s.provider.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().Len(bars, 10)

	for i := 1; i < len(bars); i++ {
		s.True(bars[i].Time.After(bars[i-1].Time))
	}

	s.Equal("AAPL", bars[0].Symbol)
	s.Equal(100.5, bars[0].Close)
}

func (s *ProviderSuite) TestFiltersDateRange() {
	s.writeHistory("AAPL", 10)

	bars, err := s.provider.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(bars, 3)
}

func (s *ProviderSuite) TestMissingFileIsProviderFailure() {
	_, err := s.provider.GetPriceHistory(context.Background(), "MSFT",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeProviderFailed))
}

func (s *ProviderSuite) TestEmptyRangeIsNoData() {
	s.writeHistory("AAPL", 10)

	_, err := s.provider.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeNoData))
}

// flakyProvider fails a fixed number of times before delegating.
type flakyProvider struct {
	inner     Provider
	failures  int
	callCount int
}

func (f *flakyProvider) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return nil, errors.New(errors.ErrCodeProviderFailed, "transient failure")
	}

	return f.inner.GetPriceHistory(ctx, symbol, start, end)
}

func (s *ProviderSuite) TestRetryRecoversFromTransientFailures() {
	s.writeHistory("AAPL", 5)

	flaky := &flakyProvider{inner: s.provider, failures: 2}
	retrying := NewRetryProvider(flaky, 5, logger.NewNopLogger())
	retrying.initialInterval = time.Millisecond

	bars, err := retrying.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(bars, 5)
	s.Equal(3, flaky.callCount)
}

func (s *ProviderSuite) TestRetryGivesUpAfterMaxRetries() {
	flaky := &flakyProvider{inner: s.provider, failures: 100}
	retrying := NewRetryProvider(flaky, 2, logger.NewNopLogger())
	retrying.initialInterval = time.Millisecond

	_, err := retrying.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().Error(err)
	s.Equal(3, flaky.callCount)
}

func (s *ProviderSuite) TestRetryDoesNotRetryNoData() {
	s.writeHistory("AAPL", 5)

	flaky := &flakyProvider{inner: s.provider, failures: 0}
	retrying := NewRetryProvider(flaky, 5, logger.NewNopLogger())

	_, err := retrying.GetPriceHistory(context.Background(), "AAPL",
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC))
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeNoData))
	s.Equal(1, flaky.callCount)
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderSuite))
}
