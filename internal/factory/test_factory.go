package factory

import (
	"context"
	"time"

	"github.com/mcoot/pokerclub/internal/dependencies/mocks"
	"github.com/mcoot/pokerclub/internal/metrics"
	"github.com/mcoot/pokerclub/internal/storage/memory"
	"github.com/mcoot/pokerclub/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, mockClock, mockIDs, metrics.Nop(), testutil.NopLogger())
	app.StorageType = StorageTypeMemory

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}

// AddTestPlayers registers players with zero points
func (t *TestApp) AddTestPlayers(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := t.PlayerService.AddPlayer(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
