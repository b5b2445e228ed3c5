package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarpehcare/portal/config"
	"github.com/tarpehcare/portal/internal/domain/model"
	"github.com/tarpehcare/portal/internal/observability/notify"
)

// mockSweepRepo is a simple mock implementation for testing.
type mockSweepRepo struct {
	mu sync.Mutex

	markCalled int
	markCounts []int64 // returned per call; zeros after exhaustion
	markErr    error

	upcoming    []*model.Shift
	upcomingErr error
}

func (m *mockSweepRepo) MarkMissedShifts(_ context.Context, _ time.Duration, _ int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markCalled++
	if m.markErr != nil {
		return 0, m.markErr
	}
	if m.markCalled <= len(m.markCounts) {
		return m.markCounts[m.markCalled-1], nil
	}
	return 0, nil
}

func (m *mockSweepRepo) ListUpcoming(_ context.Context, _ time.Duration, _ int) ([]*model.Shift, error) {
	if m.upcomingErr != nil {
		return nil, m.upcomingErr
	}
	return m.upcoming, nil
}

func (m *mockSweepRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markCalled
}

func testReaperConfig() config.ReaperConfig {
	return config.ReaperConfig{
		Interval:    10 * time.Millisecond,
		GracePeriod: 30 * time.Minute,
		BatchSize:   100,
	}
}

func TestNewMissedShiftService_RequiresRepo(t *testing.T) {
	_, err := NewMissedShiftService(MissedShiftServiceOptions{Config: testReaperConfig()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ShiftSweepRepository is required")
}

func TestMissedShiftService_RunSweep_BatchesUntilZero(t *testing.T) {
	repo := &mockSweepRepo{markCounts: []int64{100, 100, 7}}
	service, err := NewMissedShiftService(MissedShiftServiceOptions{
		Repo:   repo,
		Config: testReaperConfig(),
		Logger: slog.Default(),
	})
	require.NoError(t, err)

	require.NoError(t, service.runSweep(context.Background()))

	// Three batches with rows plus the terminating empty batch
	assert.Equal(t, 4, repo.calls())
}

func TestMissedShiftService_RunSweep_ErrorSurfaces(t *testing.T) {
	repo := &mockSweepRepo{markErr: errors.New("db down")}
	service, err := NewMissedShiftService(MissedShiftServiceOptions{
		Repo:   repo,
		Config: testReaperConfig(),
	})
	require.NoError(t, err)

	err = service.runSweep(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark missed shifts")
}

func TestMissedShiftService_RunSweep_NotifiesWhenShiftsMissed(t *testing.T) {
	repo := &mockSweepRepo{markCounts: []int64{3}}
	sink := newRecordingSink()
	service, err := NewMissedShiftService(MissedShiftServiceOptions{
		Repo:     repo,
		Config:   testReaperConfig(),
		Notifier: notify.SinkFunc(sink.Send),
	})
	require.NoError(t, err)

	require.NoError(t, service.runSweep(context.Background()))

	event := sink.wait(t)
	assert.Equal(t, notify.KindShiftMissed, event.Kind)
	assert.Equal(t, "3", event.Fields["count"])
}

func TestMissedShiftService_RunSweep_NoNotificationWhenNothingMissed(t *testing.T) {
	repo := &mockSweepRepo{}
	sink := newRecordingSink()
	service, err := NewMissedShiftService(MissedShiftServiceOptions{
		Repo:     repo,
		Config:   testReaperConfig(),
		Notifier: notify.SinkFunc(sink.Send),
	})
	require.NoError(t, err)

	require.NoError(t, service.runSweep(context.Background()))
	assert.Empty(t, sink.events)
}

func TestMissedShiftService_Run_StopsOnCancel(t *testing.T) {
	repo := &mockSweepRepo{}
	service, err := NewMissedShiftService(MissedShiftServiceOptions{
		Repo:   repo,
		Config: testReaperConfig(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	// Let at least the initial sweep happen
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	assert.GreaterOrEqual(t, repo.calls(), 1)
}
