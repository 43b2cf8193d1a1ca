package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/storage"
	"github.com/google/uuid"
)

// DefaultBackupLimit is how many pre-migration snapshots are retained.
const DefaultBackupLimit = 5

// Backup is one pre-migration snapshot: the full prior document tagged with
// the version it was taken from.
type Backup struct {
	ID          string          `json:"id"`
	CreatedAt   string          `json:"createdAt"`
	FromVersion string          `json:"fromVersion"`
	Document    json.RawMessage `json:"document"`
}

// BackupRing persists a bounded, newest-first list of document snapshots
// under its own storage key. Once the limit is exceeded the oldest snapshot
// is evicted.
type BackupRing struct {
	storage storage.Storage
	limit   int
	now     func() time.Time
}

// NewBackupRing returns a ring on the given storage. A non-positive limit
// falls back to DefaultBackupLimit.
func NewBackupRing(st storage.Storage, limit int) *BackupRing {
	if limit <= 0 {
		limit = DefaultBackupLimit
	}
	return &BackupRing{storage: st, limit: limit, now: time.Now}
}

// Snapshot stores a copy of the raw document before a destructive
// migration, evicting the oldest entry past the limit.
func (r *BackupRing) Snapshot(doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize backup: %w", err)
	}

	backups, err := r.List()
	if err != nil {
		return err
	}

	entry := Backup{
		ID:          uuid.NewString(),
		CreatedAt:   datex.Timestamp(r.now()),
		FromVersion: Version(doc),
		Document:    raw,
	}
	backups = append([]Backup{entry}, backups...)
	if len(backups) > r.limit {
		backups = backups[:r.limit]
	}

	b, err := json.Marshal(backups)
	if err != nil {
		return fmt.Errorf("failed to serialize backup ring: %w", err)
	}
	return r.storage.Set(storage.BackupKey, b)
}

// List returns the retained backups, newest first. An absent key is an
// empty list, not an error.
func (r *BackupRing) List() ([]Backup, error) {
	raw, err := r.storage.Get(storage.BackupKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []Backup{}, nil
		}
		return nil, err
	}
	var backups []Backup
	if err := json.Unmarshal(raw, &backups); err != nil {
		// A corrupted ring is not worth failing a migration over.
		return []Backup{}, nil
	}
	return backups, nil
}

// Get returns the backup with the given id, or common.ErrBackupNotFound.
func (r *BackupRing) Get(id string) (*Backup, error) {
	backups, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range backups {
		if backups[i].ID == id {
			return &backups[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", common.ErrBackupNotFound, id)
}
