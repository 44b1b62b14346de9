package provider

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/types"
	"github.com/rxtech-lab/signal-engine/pkg/errors"
)

// RetryProvider wraps another provider with exponential backoff. Transient
// failures (ErrCodeProviderFailed) are retried; a definitive empty result
// (ErrCodeNoData) is returned immediately since retrying cannot produce data.
type RetryProvider struct {
	inner           Provider
	maxRetries      uint64
	initialInterval time.Duration
	maxElapsed      time.Duration
	logger          *logger.Logger
}

// NewRetryProvider wraps inner with up to maxRetries retries.
func NewRetryProvider(inner Provider, maxRetries uint64, log *logger.Logger) *RetryProvider {
	return &RetryProvider{
		inner:           inner,
		maxRetries:      maxRetries,
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      30 * time.Second,
		logger:          log,
	}
}

// GetPriceHistory implements Provider.
func (p *RetryProvider) GetPriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceBar, error) {
	var bars []types.PriceBar

	operation := func() error {
		var err error

		bars, err = p.inner.GetPriceHistory(ctx, symbol, start, end)
		if err == nil {
			return nil
		}

		if errors.HasCode(err, errors.ErrCodeNoData) {
			return backoff.Permanent(err)
		}

		p.logger.Warn("price history fetch failed, retrying",
			zap.String("symbol", symbol),
			zap.Error(err))

		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.initialInterval
	policy.MaxElapsedTime = p.maxElapsed

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, p.maxRetries), ctx))
	if err != nil {
		return nil, err
	}

	return bars, nil
}
