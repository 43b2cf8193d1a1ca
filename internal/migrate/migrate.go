// Package migrate upgrades persisted documents from any historical schema
// version to the current one through an ordered chain of transformations,
// and validates/repairs structurally damaged documents.
//
// Steps operate on the raw decoded JSON (map[string]any) because historical
// shapes do not fit the current structs; the typed models.Document only
// exists after Decode at the end of the chain.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/logging"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

// Step is one migration: a transformation tagged with the version it
// produces. Apply must be defensive and fill missing nested structures with
// defaults rather than assuming prior steps ran on a complete object.
type Step struct {
	Version string
	Apply   func(doc map[string]any) map[string]any
}

// Migrator applies the registered steps in ascending version order.
type Migrator struct {
	steps []Step
	log   logging.Logger
	now   func() time.Time
}

// New returns a Migrator with the default step chain registered.
func New(log logging.Logger) *Migrator {
	m := &Migrator{log: log, steps: defaultSteps(), now: time.Now}
	sort.SliceStable(m.steps, func(i, j int) bool {
		return CompareVersions(m.steps[i].Version, m.steps[j].Version) < 0
	})
	return m
}

// Current returns the version the chain migrates to.
func (m *Migrator) Current() string {
	return models.CurrentVersion
}

// Version reads the document's version, treating a missing or non-string
// field as "0.0.0".
func Version(doc map[string]any) string {
	if v, ok := doc["version"].(string); ok && v != "" {
		return v
	}
	return "0.0.0"
}

// NeedsMigration reports whether the document is below the current version.
func (m *Migrator) NeedsMigration(doc map[string]any) bool {
	return CompareVersions(Version(doc), m.Current()) < 0
}

// Migrate applies every step whose target version is strictly greater than
// the document's current version, stamping the version after each step.
// Migrating an already-current document is a no-op, so the operation is
// idempotent. The version never decreases.
func (m *Migrator) Migrate(doc map[string]any) map[string]any {
	for _, step := range m.steps {
		from := Version(doc)
		if CompareVersions(from, step.Version) >= 0 {
			continue
		}
		doc = step.Apply(doc)
		doc["version"] = step.Version
		m.log.Info(context.Background(), "migration step applied", "from", from, "to", step.Version)
	}
	return doc
}

// Decode converts a raw migrated document into the typed model. If the raw
// shape fails structural validation it is repaired first, which may drop
// unsalvageable sites or credentials.
func (m *Migrator) Decode(doc map[string]any) (*models.Document, error) {
	if valid, errs := Validate(doc); !valid {
		m.log.Warn(context.Background(), "document failed validation, repairing", "violations", errs)
		doc = Repair(doc, m.now())
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	var out models.Document
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	normalize(&out)
	return &out, nil
}

// normalize replaces nil slices left by JSON decoding so consumers can
// range and marshal without nil checks.
func normalize(doc *models.Document) {
	if doc.Sites == nil {
		doc.Sites = []models.Site{}
	}
	if doc.Categories == nil {
		doc.Categories = []models.Category{}
	}
	for i := range doc.Sites {
		site := &doc.Sites[i]
		if site.Tags == nil {
			site.Tags = []string{}
		}
		if site.Credentials == nil {
			site.Credentials = []models.Credential{}
		}
		for j := range site.Credentials {
			cred := &site.Credentials[j]
			if cred.CustomFields == nil {
				cred.CustomFields = []models.CustomField{}
			}
			if cred.CheckInHistory == nil {
				cred.CheckInHistory = []models.CheckInRecord{}
			}
		}
	}
}
