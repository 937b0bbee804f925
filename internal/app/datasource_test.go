package app_test

import (
	"testing"
	"time"

	"github.com/thallberg/fullstack-quiz-sub000/internal/app"
	"github.com/thallberg/fullstack-quiz-sub000/internal/infra/memory"
)

// fakeClock lets tests control completion timestamps and session expiry.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestDataSource(t *testing.T) (*app.LocalDataSource, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	ds := app.NewLocalDataSourceWithClock(memory.NewStore(), nil, app.Options{}, clock.Now)
	return ds, clock
}
