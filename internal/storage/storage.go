// Package storage provides the durable key-value backend the state engine
// persists into. It is deliberately tiny: the whole document lives under a
// single key, the theme preference under a second and the migration backup
// ring under a third.
package storage

// Well-known keys.
const (
	DocumentKey = "sitekeeper-data"
	ThemeKey    = "sitekeeper-theme"
	BackupKey   = "sitekeeper-backups"
)

// Storage is a flat string-keyed byte store. Get returns
// common.ErrNotFound (wrapped) when the key is absent.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}
