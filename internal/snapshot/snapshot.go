package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus-market/internal/state"
	"campus-market/internal/util"

	"go.uber.org/zap"
)

// Backend stores the serialized session blob. Writes are all-or-nothing:
// a failed write leaves the previous blob intact.
type Backend interface {
	Save(ctx context.Context, blob []byte) error
	// Load returns (nil, nil) when no snapshot has been written yet.
	Load(ctx context.Context) ([]byte, error)
	Close() error
}

// Manager serializes the state blob in and out of a backend.
type Manager struct {
	backend Backend
	logger  *zap.Logger
}

// NewManager creates a snapshot manager over a backend.
func NewManager(backend Backend) *Manager {
	return &Manager{
		backend: backend,
		logger:  util.GetLogger(),
	}
}

// Save persists one snapshot of the session state.
func (m *Manager) Save(ctx context.Context, snap state.AppState) error {
	start := time.Now()

	blob, err := json.Marshal(snap)
	if err != nil {
		util.SnapshotWriteFailures.Inc()
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := m.backend.Save(ctx, blob); err != nil {
		util.SnapshotWriteFailures.Inc()
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	util.SnapshotWritesTotal.Inc()
	util.SnapshotWriteLatency.Observe(time.Since(start).Seconds())
	return nil
}

// Load reads the last persisted snapshot. The second return value is false
// when no snapshot exists yet.
func (m *Manager) Load(ctx context.Context) (state.AppState, bool, error) {
	blob, err := m.backend.Load(ctx)
	if err != nil {
		return state.AppState{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if blob == nil {
		return state.AppState{}, false, nil
	}

	var snap state.AppState
	if err := json.Unmarshal(blob, &snap); err != nil {
		// A corrupt blob is treated as absent rather than fatal; the
		// session simply starts fresh.
		m.logger.Warn("Discarding unreadable snapshot", zap.Error(err))
		return state.AppState{}, false, nil
	}
	return snap, true, nil
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
