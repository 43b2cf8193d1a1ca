// Package models defines the persisted document schema: the root Document
// plus its nested sites, credentials, categories, settings and analytics.
//
// The document is a single JSON object held under one storage key. All
// timestamps are RFC3339 strings and all calendar dates are YYYY-MM-DD,
// matching how they are compared by the store (date-substring equality).
package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/datex"
)

// CurrentVersion is the schema version written by this build. The schema
// migrator upgrades any older persisted document to this version.
const CurrentVersion = "2.1.0"

// DefaultHistoryCap bounds each credential's check-in history. The oldest
// record is evicted once the cap is exceeded.
const DefaultHistoryCap = 100

// Document is the single persisted root object.
type Document struct {
	Version    string     `json:"version"`
	LastReset  string     `json:"lastReset"`
	Settings   Settings   `json:"settings"`
	Categories []Category `json:"categories"`
	Sites      []Site     `json:"sites"`
	Analytics  Analytics  `json:"analytics"`
}

// Settings is the nested user configuration block.
type Settings struct {
	Theme         string   `json:"theme"`
	ViewMode      string   `json:"viewMode"`
	AutoReset     bool     `json:"autoReset"`
	AutoResetTime string   `json:"autoResetTime"`
	Notifications bool     `json:"notifications"`
	Security      Security `json:"security"`
	Density       string   `json:"density"`
}

// Security holds at-rest protection preferences.
type Security struct {
	EncryptExports bool `json:"encryptExports"`
	LockTimeout    int  `json:"lockTimeout"` // minutes, 0 disables
}

// Category groups sites for filtering. Order defines display order and is
// not required to be contiguous.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// Analytics carries aggregate counters maintained by the store.
// CurrentStreak never exceeds LongestStreak.
type Analytics struct {
	TotalCheckIns int     `json:"totalCheckIns"`
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	AverageDaily  float64 `json:"averageDaily"`
	SitesAdded    int     `json:"sitesAdded"`
	SitesArchived int     `json:"sitesArchived"`
	LastCheckIn   *string `json:"lastCheckIn"`
}

// DefaultDocument returns a freshly bootstrapped document at the current
// schema version with default categories and zeroed analytics.
func DefaultDocument(now time.Time) *Document {
	return &Document{
		Version:    CurrentVersion,
		LastReset:  datex.Today(now),
		Settings:   DefaultSettings(),
		Categories: DefaultCategories(),
		Sites:      []Site{},
		Analytics:  Analytics{},
	}
}

// DefaultSettings returns the settings block written on bootstrap and used
// by migrations to fill missing fields.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "dark",
		ViewMode:      "grid",
		AutoReset:     true,
		AutoResetTime: "00:00",
		Notifications: false,
		Security:      Security{EncryptExports: false, LockTimeout: 0},
		Density:       "comfortable",
	}
}

// DefaultCategories returns the built-in category set.
func DefaultCategories() []Category {
	return []Category{
		{ID: "personal", Name: "Personal", Color: "#3b82f6", Icon: "user", Order: 1},
		{ID: "work", Name: "Work", Color: "#8b5cf6", Icon: "briefcase", Order: 2},
		{ID: "finance", Name: "Finance", Color: "#10b981", Icon: "bank", Order: 3},
		{ID: "social", Name: "Social", Color: "#f59e0b", Icon: "chat", Order: 4},
	}
}

// Clone returns a deep copy of the document via a JSON round-trip, so the
// caller can mutate the copy without affecting the original.
func (d *Document) Clone() *Document {
	b, err := json.Marshal(d)
	if err != nil {
		// Document contains only JSON-representable fields.
		panic(err)
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return &out
}

// FindSite returns a pointer into Sites for the given id, or nil.
func (d *Document) FindSite(id string) *Site {
	for i := range d.Sites {
		if d.Sites[i].ID == id {
			return &d.Sites[i]
		}
	}
	return nil
}

// FindCategory returns a pointer into Categories for the given id, or nil.
func (d *Document) FindCategory(id string) *Category {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i]
		}
	}
	return nil
}
