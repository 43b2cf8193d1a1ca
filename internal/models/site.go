package models

import (
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/google/uuid"
)

// Site is a tracked destination owning one or more credentials. ID is
// immutable once created and unique within the document.
type Site struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Favicon     string       `json:"favicon"`
	Category    string       `json:"category"` // category id, "" means uncategorized
	Tags        []string     `json:"tags"`
	Priority    string       `json:"priority"`
	Color       string       `json:"color"`
	Notes       string       `json:"notes"`
	Credentials []Credential `json:"credentials"`
	Metadata    SiteMetadata `json:"metadata"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

// SiteMetadata holds usage hints shown alongside a site.
type SiteMetadata struct {
	LoginFrequency     string  `json:"loginFrequency"`
	Importance         string  `json:"importance"`
	LastIssue          *string `json:"lastIssue"`
	AverageCheckInTime *string `json:"averageCheckInTime"`
}

// Credential is a single login belonging to a site, with its own check-in
// state and bounded history. ID is unique within the parent site only.
type Credential struct {
	ID                 string          `json:"id"`
	Label              string          `json:"label"`
	Email              string          `json:"email"`
	Password           string          `json:"password"`
	Notes              string          `json:"notes"`
	CustomFields       []CustomField   `json:"customFields"`
	CheckedInOn        *string         `json:"checkedInOn"`
	CheckInHistory     []CheckInRecord `json:"checkInHistory"`
	LastPasswordChange string          `json:"lastPasswordChange"`
	PasswordExpiry     *string         `json:"passwordExpiry"`
	Strength           string          `json:"strength"`
	Breached           bool            `json:"breached"`
}

// CustomField is a free-form name/value pair attached to a credential.
type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CheckInRecord is one entry of a credential's check-in audit trail,
// most-recent-first.
type CheckInRecord struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

// NewSite returns a site with a fresh id and creation timestamps.
func NewSite(name, url string, now time.Time) *Site {
	ts := datex.Timestamp(now)
	return &Site{
		ID:          uuid.NewString(),
		Name:        name,
		URL:         url,
		Tags:        []string{},
		Priority:    "normal",
		Credentials: []Credential{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// NewCredential returns a credential with a fresh id and empty history.
func NewCredential(label, email, password string) *Credential {
	return &Credential{
		ID:             uuid.NewString(),
		Label:          label,
		Email:          email,
		Password:       password,
		CustomFields:   []CustomField{},
		CheckInHistory: []CheckInRecord{},
	}
}

// FindCredential returns a pointer into Credentials for the given id, or nil.
func (s *Site) FindCredential(id string) *Credential {
	for i := range s.Credentials {
		if s.Credentials[i].ID == id {
			return &s.Credentials[i]
		}
	}
	return nil
}

// CheckedInToday reports whether the credential was checked in on the given
// local calendar date (YYYY-MM-DD).
func (c *Credential) CheckedInToday(today string) bool {
	return c.CheckedInOn != nil && datex.DateOf(*c.CheckedInOn) == today
}

// AllCheckedIn reports whether every credential of the site is checked in
// today. A site without credentials is never "done".
func (s *Site) AllCheckedIn(today string) bool {
	if len(s.Credentials) == 0 {
		return false
	}
	for i := range s.Credentials {
		if !s.Credentials[i].CheckedInToday(today) {
			return false
		}
	}
	return true
}
