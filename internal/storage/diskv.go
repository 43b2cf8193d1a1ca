package storage

import (
	"fmt"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/peterbourgon/diskv/v3"
)

// DiskStorage implements Storage on top of diskv, one file per key under a
// base directory.
type DiskStorage struct {
	d *diskv.Diskv
}

// NewDiskStorage returns a DiskStorage rooted at basePath. The directory is
// created lazily on first write.
func NewDiskStorage(basePath string) *DiskStorage {
	return &DiskStorage{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *DiskStorage) Get(key string) ([]byte, error) {
	if !s.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, key)
	}
	val, err := s.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return val, nil
}

func (s *DiskStorage) Set(key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

func (s *DiskStorage) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

func (s *DiskStorage) Keys() ([]string, error) {
	keys := make([]string, 0)
	for key := range s.d.Keys(nil) {
		keys = append(keys, key)
	}
	return keys, nil
}
