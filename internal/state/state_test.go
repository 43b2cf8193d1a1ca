package state

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/logging"
	"github.com/dmitrijs2005/sitekeeper/internal/migrate"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
	"github.com/dmitrijs2005/sitekeeper/internal/storage"
	"github.com/dmitrijs2005/sitekeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2025-06-02"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	log := logging.NewNop()
	st := storage.NewMemStorage()
	now := func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) }
	s := store.New(st, migrate.New(log), migrate.NewBackupRing(st, 5), log, store.WithClock(now))
	m := New(s, log)
	require.NoError(t, m.Init())
	return m
}

func seed(t *testing.T, m *Manager) (string, string) {
	t.Helper()
	site := models.NewSite("GitHub", "https://github.com", time.Now())
	site.Category = "work"
	site.Tags = []string{"dev", "daily"}
	require.NoError(t, m.AddSite(site))
	cred := models.NewCredential("main", "dev@example.com", "pw")
	require.NoError(t, m.AddCredential(site.ID, cred))
	return site.ID, cred.ID
}

func TestManager_CacheIsACopy(t *testing.T) {
	m := newTestManager(t)
	seed(t, m)

	m.Document().Sites[0].Name = "mutated"
	assert.Equal(t, "mutated", m.Document().Sites[0].Name, "cache itself mutates")

	// the store's document is untouched; the next mutation refreshes the cache
	other := models.NewSite("Other", "https://other.example.com", time.Now())
	require.NoError(t, m.AddSite(other))

	names := make([]string, 0, len(m.Document().Sites))
	for _, s := range m.Document().Sites {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "GitHub")
	assert.NotContains(t, names, "mutated")
}

func TestManager_MutationsEmitEvents(t *testing.T) {
	m := newTestManager(t)

	var events []Event
	for _, e := range []Event{
		EventStateChanged, EventSiteAdded, EventSiteDeleted, EventCredentialChecked,
	} {
		ev := e
		m.Subscribe(ev, func(any) { events = append(events, ev) })
	}

	site := models.NewSite("A", "https://a.example.com", time.Now())
	require.NoError(t, m.AddSite(site))
	assert.Equal(t, []Event{EventSiteAdded, EventStateChanged}, events, "specific event precedes state-changed")

	events = nil
	cred := models.NewCredential("x", "a@example.com", "pw")
	require.NoError(t, m.AddCredential(site.ID, cred))
	require.True(t, m.CheckIn(site.ID, cred.ID))
	assert.Contains(t, events, EventCredentialChecked)

	events = nil
	require.True(t, m.DeleteSite(site.ID))
	assert.Equal(t, []Event{EventSiteDeleted, EventStateChanged}, events)
}

func TestManager_FailedMutationEmitsNothing(t *testing.T) {
	m := newTestManager(t)

	fired := false
	m.Subscribe(EventStateChanged, func(any) { fired = true })

	assert.False(t, m.CheckIn("missing", "missing"))
	assert.False(t, m.DeleteSite("missing"))
	assert.False(t, fired)
}

func TestManager_FilterEvents(t *testing.T) {
	m := newTestManager(t)

	var events []Event
	for _, e := range []Event{EventFilterChanged, EventSearchPerformed, EventViewChanged, EventThemeChanged} {
		ev := e
		m.Subscribe(ev, func(any) { events = append(events, ev) })
	}

	m.SetSearch("git")
	m.SetStatusFilter(StatusDone)
	m.SetViewMode("list")
	require.True(t, m.SetTheme("light"))

	assert.Equal(t, []Event{
		EventSearchPerformed, EventFilterChanged,
		EventFilterChanged,
		EventViewChanged,
		EventThemeChanged,
	}, events)
	assert.Equal(t, "git", m.Filters().Search)
	assert.Equal(t, "list", m.Filters().ViewMode)
}

func TestGetFilteredSites_Search(t *testing.T) {
	m := newTestManager(t)
	seed(t, m)
	other := models.NewSite("Mail", "https://mail.example.com", time.Now())
	require.NoError(t, m.AddSite(other))

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"github", 1},   // site name
		{"MAIL.EXAMPLE", 1}, // URL, case-insensitive
		{"daily", 1},    // tag
		{"dev@examp", 1}, // credential email
		{"main", 1},      // credential label
		{"nothing", 0},
	}
	for _, tt := range tests {
		m.SetSearch(tt.query)
		assert.Lenf(t, m.GetFilteredSites(today), tt.want, "query %q", tt.query)
	}
}

func TestGetFilteredSites_Status(t *testing.T) {
	m := newTestManager(t)
	siteID, credID := seed(t, m)

	m.SetStatusFilter(StatusDone)
	assert.Empty(t, m.GetFilteredSites(today))

	m.SetStatusFilter(StatusPending)
	assert.Len(t, m.GetFilteredSites(today), 1)

	require.True(t, m.CheckIn(siteID, credID))

	m.SetStatusFilter(StatusDone)
	assert.Len(t, m.GetFilteredSites(today), 1)
	m.SetStatusFilter(StatusPending)
	assert.Empty(t, m.GetFilteredSites(today))
}

func TestGetFilteredSites_CategoryAndTag(t *testing.T) {
	m := newTestManager(t)
	seed(t, m)
	other := models.NewSite("Bank", "https://bank.example.com", time.Now())
	other.Category = "finance"
	other.Tags = []string{"money"}
	require.NoError(t, m.AddSite(other))

	m.SetCategoryFilter("work")
	require.Len(t, m.GetFilteredSites(today), 1)
	assert.Equal(t, "GitHub", m.GetFilteredSites(today)[0].Name)

	m.SetCategoryFilter("")
	m.SetTagFilter("MONEY")
	require.Len(t, m.GetFilteredSites(today), 1)
	assert.Equal(t, "Bank", m.GetFilteredSites(today)[0].Name)

	// filters compose
	m.SetCategoryFilter("work")
	assert.Empty(t, m.GetFilteredSites(today))
}

func TestManager_ExportImportEvents(t *testing.T) {
	m := newTestManager(t)
	seed(t, m)

	var events []Event
	m.Subscribe(EventExportCompleted, func(any) { events = append(events, EventExportCompleted) })
	m.Subscribe(EventImportCompleted, func(any) { events = append(events, EventImportCompleted) })

	out, err := m.Export(store.ExportOptions{Format: store.FormatJSON, IncludeHistory: true})
	require.NoError(t, err)
	require.NoError(t, m.Import([]byte(out), nil))

	assert.Equal(t, []Event{EventExportCompleted, EventImportCompleted}, events)
	assert.Len(t, m.Document().Sites, 2, "import merge doubled the site")
}
