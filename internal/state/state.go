// Package state is the session-scoped facade over the persistence store: a
// cached copy of the document, ephemeral filter state and a publish/
// subscribe bus that tells consumers when anything changed. Construct one
// Manager per session and pass the Store in explicitly; there is no shared
// instance.
package state

import (
	"strings"

	"github.com/dmitrijs2005/sitekeeper/internal/logging"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
	"github.com/dmitrijs2005/sitekeeper/internal/store"
)

// Status filter values for GetFilteredSites.
const (
	StatusAll     = "all"
	StatusDone    = "done"
	StatusPending = "pending"
)

// Filters is the ephemeral view state. It is never persisted.
type Filters struct {
	Search   string
	Status   string
	Category string
	Tag      string
	ViewMode string
}

// Manager caches the store's document and republishes mutations as events.
// Every mutating wrapper re-reads the document into the cache and emits
// EventStateChanged plus a more specific event.
type Manager struct {
	store   *store.Store
	bus     *Bus
	log     logging.Logger
	doc     *models.Document
	filters Filters
}

// New returns a Manager over the given store.
func New(st *store.Store, log logging.Logger) *Manager {
	return &Manager{
		store:   st,
		bus:     NewBus(log),
		log:     log.With("component", "state"),
		filters: Filters{Status: StatusAll},
	}
}

// Init initializes the underlying store and primes the cache.
func (m *Manager) Init() error {
	if err := m.store.Init(); err != nil {
		return err
	}
	m.filters.ViewMode = m.store.Document().Settings.ViewMode
	m.refresh(EventStateChanged, nil)
	return nil
}

// Subscribe registers a handler for an event; the returned func removes it.
func (m *Manager) Subscribe(event Event, fn Handler) func() {
	return m.bus.Subscribe(event, fn)
}

// Document returns the cached document copy. Mutating it does not affect
// the store.
func (m *Manager) Document() *models.Document {
	return m.doc
}

// Filters returns the current filter state.
func (m *Manager) Filters() Filters {
	return m.filters
}

// refresh re-reads the store's document into the cache and publishes the
// specific event (when given) followed by EventStateChanged.
func (m *Manager) refresh(event Event, payload any) {
	m.doc = m.store.Document().Clone()
	if event != "" && event != EventStateChanged {
		m.bus.Publish(event, payload)
	}
	m.bus.Publish(EventStateChanged, payload)
}

// AddSite wraps store.AddSite.
func (m *Manager) AddSite(site *models.Site) error {
	if err := m.store.AddSite(site); err != nil {
		return err
	}
	m.refresh(EventSiteAdded, site.ID)
	return nil
}

// UpdateSite wraps store.UpdateSite.
func (m *Manager) UpdateSite(site *models.Site) bool {
	if !m.store.UpdateSite(site) {
		return false
	}
	m.refresh(EventSiteUpdated, site.ID)
	return true
}

// DeleteSite wraps store.DeleteSite.
func (m *Manager) DeleteSite(id string) bool {
	if !m.store.DeleteSite(id) {
		return false
	}
	m.refresh(EventSiteDeleted, id)
	return true
}

// AddCredential wraps store.AddCredential.
func (m *Manager) AddCredential(siteID string, cred *models.Credential) error {
	if err := m.store.AddCredential(siteID, cred); err != nil {
		return err
	}
	m.refresh(EventSiteUpdated, siteID)
	return nil
}

// UpdateCredential wraps store.UpdateCredential.
func (m *Manager) UpdateCredential(siteID string, cred models.Credential) bool {
	if !m.store.UpdateCredential(siteID, cred) {
		return false
	}
	m.refresh(EventSiteUpdated, siteID)
	return true
}

// DeleteCredential wraps store.DeleteCredential.
func (m *Manager) DeleteCredential(siteID, credID string) bool {
	if !m.store.DeleteCredential(siteID, credID) {
		return false
	}
	m.refresh(EventSiteUpdated, siteID)
	return true
}

// CheckIn wraps store.CheckInCredential.
func (m *Manager) CheckIn(siteID, credID string) bool {
	if !m.store.CheckInCredential(siteID, credID) {
		return false
	}
	m.refresh(EventCredentialChecked, credID)
	return true
}

// ResetCredential wraps store.ResetCredential.
func (m *Manager) ResetCredential(siteID, credID string) bool {
	if !m.store.ResetCredential(siteID, credID) {
		return false
	}
	m.refresh(EventStateChanged, credID)
	return true
}

// ResetAll wraps store.ResetAllCredentials.
func (m *Manager) ResetAll() bool {
	if !m.store.ResetAllCredentials() {
		return false
	}
	m.refresh(EventStateChanged, nil)
	return true
}

// AddCategory wraps store.AddCategory.
func (m *Manager) AddCategory(cat *models.Category) error {
	if err := m.store.AddCategory(cat); err != nil {
		return err
	}
	m.refresh(EventStateChanged, cat.ID)
	return nil
}

// DeleteCategory wraps store.DeleteCategory.
func (m *Manager) DeleteCategory(id string) bool {
	if !m.store.DeleteCategory(id) {
		return false
	}
	m.refresh(EventStateChanged, id)
	return true
}

// SetTheme wraps store.SetTheme.
func (m *Manager) SetTheme(theme string) bool {
	if !m.store.SetTheme(theme) {
		return false
	}
	m.refresh(EventThemeChanged, theme)
	return true
}

// Export wraps store.ExportData.
func (m *Manager) Export(opts store.ExportOptions) (string, error) {
	out, err := m.store.ExportData(opts)
	if err != nil {
		return "", err
	}
	m.bus.Publish(EventExportCompleted, string(opts.Format))
	return out, nil
}

// Import wraps store.ImportData.
func (m *Manager) Import(data, password []byte) error {
	if err := m.store.ImportData(data, password); err != nil {
		return err
	}
	m.refresh(EventImportCompleted, nil)
	return nil
}

// SetSearch updates the search text filter.
func (m *Manager) SetSearch(text string) {
	m.filters.Search = text
	m.bus.Publish(EventSearchPerformed, text)
	m.bus.Publish(EventFilterChanged, m.filters)
}

// SetStatusFilter updates the done/pending filter.
func (m *Manager) SetStatusFilter(status string) {
	m.filters.Status = status
	m.bus.Publish(EventFilterChanged, m.filters)
}

// SetCategoryFilter updates the category filter.
func (m *Manager) SetCategoryFilter(category string) {
	m.filters.Category = category
	m.bus.Publish(EventFilterChanged, m.filters)
}

// SetTagFilter updates the tag filter.
func (m *Manager) SetTagFilter(tag string) {
	m.filters.Tag = tag
	m.bus.Publish(EventFilterChanged, m.filters)
}

// SetViewMode updates the view mode.
func (m *Manager) SetViewMode(mode string) {
	m.filters.ViewMode = mode
	m.bus.Publish(EventViewChanged, mode)
}

// GetFilteredSites applies, in order: full-text search, then the status
// filter, then category, then tag. Search matches site name, URL, tags and
// any credential's email or label, case-insensitively.
func (m *Manager) GetFilteredSites(today string) []models.Site {
	out := make([]models.Site, 0, len(m.doc.Sites))
	for i := range m.doc.Sites {
		site := &m.doc.Sites[i]
		if !m.matchesSearch(site) {
			continue
		}
		if !m.matchesStatus(site, today) {
			continue
		}
		if m.filters.Category != "" && site.Category != m.filters.Category {
			continue
		}
		if m.filters.Tag != "" && !containsFold(site.Tags, m.filters.Tag) {
			continue
		}
		out = append(out, *site)
	}
	return out
}

func (m *Manager) matchesSearch(site *models.Site) bool {
	query := strings.ToLower(strings.TrimSpace(m.filters.Search))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(site.Name), query) ||
		strings.Contains(strings.ToLower(site.URL), query) {
		return true
	}
	for _, tag := range site.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	for i := range site.Credentials {
		cred := &site.Credentials[i]
		if strings.Contains(strings.ToLower(cred.Email), query) ||
			strings.Contains(strings.ToLower(cred.Label), query) {
			return true
		}
	}
	return false
}

func (m *Manager) matchesStatus(site *models.Site, today string) bool {
	switch m.filters.Status {
	case StatusDone:
		return site.AllCheckedIn(today)
	case StatusPending:
		return !site.AllCheckedIn(today)
	default:
		return true
	}
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
