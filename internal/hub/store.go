package hub

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumesync/lumesync/internal/infrastructure/logging"
)

// Store persists device snapshots to SQLite as a write-through tap.
//
// The live registry is always rebuilt from the controller on startup;
// the store only carries labels and last-known state across restarts for
// listings and diagnostics. Persistence failures are logged and never
// affect dispatch.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewStore creates a store over an open database.
func NewStore(db *sql.DB, logger *logging.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// StateChanged implements Tap: upsert the device row for every change.
func (s *Store) StateChanged(ev Event) {
	state, err := json.Marshal(ev.State.Render())
	if err != nil {
		s.logger.Warn("encoding device state", "device", ev.DeviceID, "error", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO devices (id, server_id, upstream_id, label, state, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			server_id   = excluded.server_id,
			upstream_id = excluded.upstream_id,
			label       = excluded.label,
			state       = excluded.state,
			updated_at  = CURRENT_TIMESTAMP`,
		ev.DeviceID, ev.ServerID, ev.UpstreamID, ev.Label, string(state),
	)
	if err != nil {
		s.logger.Warn("persisting device state", "device", ev.DeviceID, "error", err)
	}
}

// StoredDevice is one persisted device snapshot.
type StoredDevice struct {
	ID         string         `json:"id"`
	ServerID   string         `json:"server_id"`
	UpstreamID string         `json:"upstream_id"`
	Label      string         `json:"label"`
	State      map[string]any `json:"state"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Devices returns the persisted snapshots for one server.
func (s *Store) Devices(ctx context.Context, serverID string) ([]StoredDevice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, server_id, upstream_id, label, state, updated_at
		FROM devices WHERE server_id = ? ORDER BY id`,
		serverID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []StoredDevice
	for rows.Next() {
		var d StoredDevice
		var stateJSON string
		if err := rows.Scan(&d.ID, &d.ServerID, &d.UpstreamID, &d.Label, &stateJSON, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning device row: %w", err)
		}
		if err := json.Unmarshal([]byte(stateJSON), &d.State); err != nil {
			return nil, fmt.Errorf("decoding device state: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
