// Package store owns the canonical persisted document. It is the sole
// writer of the document key: every mutating operation rewrites the full
// document synchronously, there is no partial persistence. Storage-write
// failures degrade to a false return plus a logged error so callers can
// continue; corrupted stored JSON reads as "no document" and triggers a
// fresh bootstrap.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/logging"
	"github.com/dmitrijs2005/sitekeeper/internal/migrate"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
	"github.com/dmitrijs2005/sitekeeper/internal/storage"
)

// Store coordinates the storage backend, the schema migrator and the
// in-memory document. It assumes a single logical writer: callers must
// serialize mutating calls themselves.
type Store struct {
	storage    storage.Storage
	migrator   *migrate.Migrator
	backups    *migrate.BackupRing
	log        logging.Logger
	now        func() time.Time
	historyCap int
	iterations int

	doc *models.Document
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIterations overrides the PBKDF2 iteration count used for encrypted
// exports.
func WithIterations(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithHistoryCap overrides the per-credential check-in history bound.
func WithHistoryCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.historyCap = n
		}
	}
}

// New returns an uninitialized Store; call Init before any other method.
func New(st storage.Storage, m *migrate.Migrator, backups *migrate.BackupRing, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		storage:    st,
		migrator:   m,
		backups:    backups,
		log:        log.With("component", "store"),
		now:        time.Now,
		historyCap: models.DefaultHistoryCap,
		iterations: cryptox.DefaultIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted document, bootstrapping a default one when none
// exists or the stored JSON is unreadable. A stale document is snapshotted
// into the backup ring and migrated before use. Finally the daily-reset
// check runs once; Init is the only trigger point for it, a session
// spanning midnight will not reset until the next Init.
func (s *Store) Init() error {
	ctx := context.Background()

	raw, err := s.storage.Get(storage.DocumentKey)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Error(ctx, "failed to read document, bootstrapping", "error", err)
		}
		s.bootstrap()
		s.CheckDailyReset()
		return nil
	}

	var rawDoc map[string]any
	if err := json.Unmarshal(raw, &rawDoc); err != nil {
		s.log.Error(ctx, "stored document is corrupted, bootstrapping", "error", err)
		s.bootstrap()
		s.CheckDailyReset()
		return nil
	}

	migrated := false
	if s.migrator.NeedsMigration(rawDoc) {
		if err := s.backups.Snapshot(rawDoc); err != nil {
			s.log.Error(ctx, "failed to snapshot document before migration", "error", err)
		}
		rawDoc = s.migrator.Migrate(rawDoc)
		migrated = true
	}

	doc, err := s.migrator.Decode(rawDoc)
	if err != nil {
		s.log.Error(ctx, "failed to decode document, bootstrapping", "error", err)
		s.bootstrap()
		s.CheckDailyReset()
		return nil
	}

	s.doc = doc
	if migrated {
		s.persist()
	}
	s.CheckDailyReset()
	return nil
}

// Document returns the live in-memory document. Callers that need an
// isolated copy should Clone it.
func (s *Store) Document() *models.Document {
	return s.doc
}

// CheckDailyReset clears every credential's checked-in state when the
// calendar day has changed since lastReset and auto-reset is enabled.
// Check-in history and analytics counters are untouched. Returns whether a
// reset happened.
func (s *Store) CheckDailyReset() bool {
	today := datex.Today(s.now())
	if s.doc.LastReset == today {
		return false
	}
	if !s.doc.Settings.AutoReset {
		return false
	}

	for i := range s.doc.Sites {
		for j := range s.doc.Sites[i].Credentials {
			s.doc.Sites[i].Credentials[j].CheckedInOn = nil
		}
	}
	s.doc.LastReset = today
	s.log.Info(context.Background(), "daily reset performed", "date", today)
	return s.persist()
}

// GetTheme returns the theme preference stored under its own key, falling
// back to the document settings.
func (s *Store) GetTheme() string {
	raw, err := s.storage.Get(storage.ThemeKey)
	if err != nil {
		return s.doc.Settings.Theme
	}
	return string(raw)
}

// SetTheme records the theme preference both in the document settings and
// under the dedicated theme key.
func (s *Store) SetTheme(theme string) bool {
	if err := s.storage.Set(storage.ThemeKey, []byte(theme)); err != nil {
		s.log.Error(context.Background(), "failed to persist theme", "error", err)
		return false
	}
	s.doc.Settings.Theme = theme
	return s.persist()
}

// UpdateSettings replaces the settings block.
func (s *Store) UpdateSettings(settings models.Settings) bool {
	s.doc.Settings = settings
	return s.persist()
}

// ClearAll destroys the persisted document and theme preference and
// bootstraps a fresh default document. This is the only way a document is
// ever destroyed.
func (s *Store) ClearAll() bool {
	ctx := context.Background()
	if err := s.storage.Delete(storage.DocumentKey); err != nil {
		s.log.Error(ctx, "failed to delete document", "error", err)
		return false
	}
	if err := s.storage.Delete(storage.ThemeKey); err != nil {
		s.log.Error(ctx, "failed to delete theme", "error", err)
	}
	s.bootstrap()
	return true
}

// Backups lists the retained pre-migration snapshots, newest first.
func (s *Store) Backups() ([]migrate.Backup, error) {
	return s.backups.List()
}

// RestoreBackup replaces the current document with the identified snapshot,
// migrating it forward if it predates the current schema.
func (s *Store) RestoreBackup(id string) error {
	backup, err := s.backups.Get(id)
	if err != nil {
		return err
	}

	var rawDoc map[string]any
	if err := json.Unmarshal(backup.Document, &rawDoc); err != nil {
		return fmt.Errorf("%w: backup is corrupted: %v", common.ErrValidation, err)
	}
	if s.migrator.NeedsMigration(rawDoc) {
		rawDoc = s.migrator.Migrate(rawDoc)
	}
	doc, err := s.migrator.Decode(rawDoc)
	if err != nil {
		return err
	}

	s.doc = doc
	s.persist()
	return nil
}

func (s *Store) bootstrap() {
	s.doc = models.DefaultDocument(s.now())
	s.persist()
}

// persist writes the full document back to storage. The document version is
// monotonically non-decreasing: persist never writes a version below the
// current schema chain's output.
func (s *Store) persist() bool {
	b, err := json.Marshal(s.doc)
	if err != nil {
		s.log.Error(context.Background(), "failed to serialize document", "error", err)
		return false
	}
	if err := s.storage.Set(storage.DocumentKey, b); err != nil {
		s.log.Error(context.Background(), "failed to persist document", "error", err)
		return false
	}
	return true
}
