package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
)

// ImportData parses an exported payload and merges it into the current
// document. Encrypted payloads are detected by the envelope's algorithm
// field and require a password. The import must carry an array sites field.
//
// Merging is additive: imported sites are appended without deduplication by
// id, so importing the same export twice doubles every site. Categories are
// overwritten only when the import provides them.
func (s *Store) ImportData(data []byte, password []byte) error {
	var rawDoc map[string]any

	if cryptox.IsEnvelope(data) {
		if len(password) == 0 {
			return fmt.Errorf("%w: encrypted import requires a password", common.ErrValidation)
		}
		var env cryptox.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return fmt.Errorf("%w: malformed envelope: %v", common.ErrValidation, err)
		}
		if err := cryptox.Decrypt(&env, password, &rawDoc); err != nil {
			return err
		}
	} else {
		if err := json.Unmarshal(data, &rawDoc); err != nil {
			return fmt.Errorf("%w: not valid JSON: %v", common.ErrValidation, err)
		}
	}

	if _, ok := rawDoc["sites"].([]any); !ok {
		return fmt.Errorf("%w: import has no sites array", common.ErrValidation)
	}

	if s.migrator.NeedsMigration(rawDoc) {
		rawDoc = s.migrator.Migrate(rawDoc)
	}
	imported, err := s.migrator.Decode(rawDoc)
	if err != nil {
		return err
	}

	s.doc.Sites = append(s.doc.Sites, imported.Sites...)
	if cats, ok := rawDoc["categories"].([]any); ok && len(cats) > 0 {
		s.doc.Categories = imported.Categories
	}

	s.persist()
	s.log.Info(context.Background(), "import merged",
		"sites", len(imported.Sites), "total", len(s.doc.Sites))
	return nil
}
