package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise_gateway/internal/feature/market/domain/entity"
)

// mockQuoteSource is a mock implementation of the QuoteSource interface.
type mockQuoteSource struct {
	FetchQuotesFunc func(ctx context.Context) ([]entity.Quote, error)
}

func (m *mockQuoteSource) FetchQuotes(ctx context.Context) ([]entity.Quote, error) {
	if m.FetchQuotesFunc != nil {
		return m.FetchQuotesFunc(ctx)
	}
	return nil, nil
}

// countingLimiter records how often the refresh path consulted it.
type countingLimiter struct {
	calls int
}

func (l *countingLimiter) WaitIfNeeded() { l.calls++ }

func sampleQuotes() []entity.Quote {
	return []entity.Quote{
		{Symbol: "AAPL", CurrentPrice: 190, History: []entity.ClosingPrice{{Date: "2026-08-28", Close: 189.1}}},
		{Symbol: "BTC", CurrentPrice: 70000},
	}
}

func TestQuoteUsecase_RefreshRebuildsTable(t *testing.T) {
	t.Parallel()

	source := &mockQuoteSource{
		FetchQuotesFunc: func(ctx context.Context) ([]entity.Quote, error) { return sampleQuotes(), nil },
	}

	uc := NewQuoteUsecase(source, nil)
	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, map[string]float64{"AAPL": 190, "BTC": 70000}, uc.Prices())

	history, ok := uc.History("AAPL")
	require.True(t, ok)
	assert.Equal(t, []entity.ClosingPrice{{Date: "2026-08-28", Close: 189.1}}, history)

	_, ok = uc.History("BTC")
	assert.False(t, ok, "symbols without history rows report absence")
}

func TestQuoteUsecase_RefreshFailureKeepsStaleTable(t *testing.T) {
	t.Parallel()

	fail := false
	source := &mockQuoteSource{
		FetchQuotesFunc: func(ctx context.Context) ([]entity.Quote, error) {
			if fail {
				return nil, errors.New("502 bad gateway")
			}
			return sampleQuotes(), nil
		},
	}

	uc := NewQuoteUsecase(source, nil)
	require.NoError(t, uc.Refresh(context.Background()))

	fail = true
	require.NoError(t, uc.Refresh(context.Background()), "read failures degrade, never propagate")
	assert.Equal(t, map[string]float64{"AAPL": 190, "BTC": 70000}, uc.Prices())
}

func TestQuoteUsecase_RefreshDropsEntriesNotInLatestFetch(t *testing.T) {
	t.Parallel()

	quotes := sampleQuotes()
	source := &mockQuoteSource{
		FetchQuotesFunc: func(ctx context.Context) ([]entity.Quote, error) { return quotes, nil },
	}

	uc := NewQuoteUsecase(source, nil)
	require.NoError(t, uc.Refresh(context.Background()))

	quotes = []entity.Quote{{Symbol: "AAPL", CurrentPrice: 191}}
	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, map[string]float64{"AAPL": 191}, uc.Prices(), "the table is rebuilt fully, not merged")
}

func TestQuoteUsecase_QuotesSortedBySymbol(t *testing.T) {
	t.Parallel()

	source := &mockQuoteSource{
		FetchQuotesFunc: func(ctx context.Context) ([]entity.Quote, error) {
			return []entity.Quote{
				{Symbol: "VFIAX", CurrentPrice: 420},
				{Symbol: "AAPL", CurrentPrice: 190},
				{Symbol: "BTC", CurrentPrice: 70000},
			}, nil
		},
	}

	uc := NewQuoteUsecase(source, nil)
	require.NoError(t, uc.Refresh(context.Background()))

	got := uc.Quotes()
	assert.Equal(t, []string{"AAPL", "BTC", "VFIAX"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
}

func TestQuoteUsecase_SubscribersFireOnSuccessfulRefreshOnly(t *testing.T) {
	t.Parallel()

	fail := false
	source := &mockQuoteSource{
		FetchQuotesFunc: func(ctx context.Context) ([]entity.Quote, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return sampleQuotes(), nil
		},
	}

	uc := NewQuoteUsecase(source, nil)
	var fired int
	uc.Subscribe(func() { fired++ })

	require.NoError(t, uc.Refresh(context.Background()))
	fail = true
	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, 1, fired)
}

func TestQuoteUsecase_LimiterConsultedOnEveryRefresh(t *testing.T) {
	t.Parallel()

	limiter := &countingLimiter{}
	uc := NewQuoteUsecase(&mockQuoteSource{}, limiter)

	require.NoError(t, uc.Refresh(context.Background()))
	require.NoError(t, uc.Refresh(context.Background()))

	assert.Equal(t, 2, limiter.calls)
}
