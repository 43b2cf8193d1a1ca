package store

import (
	"fmt"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
	"github.com/google/uuid"
)

// AddSite validates and appends a new site, stamping creation timestamps
// and assigning an id when the caller did not. Validation happens before
// any write, so a rejected site never corrupts persisted state.
func (s *Store) AddSite(site *models.Site) error {
	if site == nil || site.Name == "" || site.URL == "" {
		return fmt.Errorf("%w: site requires name and url", common.ErrValidation)
	}
	if site.ID == "" {
		site.ID = uuid.NewString()
	}
	if s.doc.FindSite(site.ID) != nil {
		return fmt.Errorf("%w: duplicate site id %s", common.ErrValidation, site.ID)
	}
	if site.Tags == nil {
		site.Tags = []string{}
	}
	if site.Credentials == nil {
		site.Credentials = []models.Credential{}
	}

	ts := datex.Timestamp(s.now())
	site.CreatedAt = ts
	site.UpdatedAt = ts

	s.doc.Sites = append(s.doc.Sites, *site)
	s.doc.Analytics.SitesAdded++
	s.persist()
	return nil
}

// UpdateSite replaces an existing site's fields, preserving its id,
// creation timestamp and credentials, and stamping updatedAt. Returns false
// when the site does not exist.
func (s *Store) UpdateSite(site *models.Site) bool {
	if site == nil {
		return false
	}
	existing := s.doc.FindSite(site.ID)
	if existing == nil {
		return false
	}

	site.CreatedAt = existing.CreatedAt
	site.UpdatedAt = datex.Timestamp(s.now())
	if site.Credentials == nil {
		site.Credentials = existing.Credentials
	}
	if site.Tags == nil {
		site.Tags = []string{}
	}
	*existing = *site
	return s.persist()
}

// DeleteSite removes a site permanently. This is a hard delete; the
// archived counter is the only trace left behind.
func (s *Store) DeleteSite(id string) bool {
	for i := range s.doc.Sites {
		if s.doc.Sites[i].ID == id {
			s.doc.Sites = append(s.doc.Sites[:i], s.doc.Sites[i+1:]...)
			s.doc.Analytics.SitesArchived++
			return s.persist()
		}
	}
	return false
}

// AddCredential appends a credential to a site. The credential id only has
// to be unique within its parent site.
func (s *Store) AddCredential(siteID string, cred *models.Credential) error {
	site := s.doc.FindSite(siteID)
	if site == nil {
		return fmt.Errorf("%w: site %s", common.ErrNotFound, siteID)
	}
	if cred == nil || cred.Email == "" {
		return fmt.Errorf("%w: credential requires email", common.ErrValidation)
	}
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if site.FindCredential(cred.ID) != nil {
		return fmt.Errorf("%w: duplicate credential id %s", common.ErrValidation, cred.ID)
	}
	if cred.CustomFields == nil {
		cred.CustomFields = []models.CustomField{}
	}
	if cred.CheckInHistory == nil {
		cred.CheckInHistory = []models.CheckInRecord{}
	}

	site.Credentials = append(site.Credentials, *cred)
	site.UpdatedAt = datex.Timestamp(s.now())
	s.persist()
	return nil
}

// UpdateCredential replaces a credential's fields, keeping its check-in
// state and history. Returns false when the site or credential is missing.
func (s *Store) UpdateCredential(siteID string, cred models.Credential) bool {
	site := s.doc.FindSite(siteID)
	if site == nil {
		return false
	}
	existing := site.FindCredential(cred.ID)
	if existing == nil {
		return false
	}

	cred.CheckedInOn = existing.CheckedInOn
	cred.CheckInHistory = existing.CheckInHistory
	*existing = cred
	site.UpdatedAt = datex.Timestamp(s.now())
	return s.persist()
}

// DeleteCredential removes a credential from its site.
func (s *Store) DeleteCredential(siteID, credID string) bool {
	site := s.doc.FindSite(siteID)
	if site == nil {
		return false
	}
	for i := range site.Credentials {
		if site.Credentials[i].ID == credID {
			site.Credentials = append(site.Credentials[:i], site.Credentials[i+1:]...)
			site.UpdatedAt = datex.Timestamp(s.now())
			return s.persist()
		}
	}
	return false
}

// AddCategory validates and appends a category; ids must be unique across
// the document.
func (s *Store) AddCategory(cat *models.Category) error {
	if cat == nil || cat.Name == "" {
		return fmt.Errorf("%w: category requires name", common.ErrValidation)
	}
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if s.doc.FindCategory(cat.ID) != nil {
		return fmt.Errorf("%w: duplicate category id %s", common.ErrValidation, cat.ID)
	}
	if cat.Order == 0 {
		cat.Order = len(s.doc.Categories) + 1
	}
	s.doc.Categories = append(s.doc.Categories, *cat)
	s.persist()
	return nil
}

// UpdateCategory replaces a category by id.
func (s *Store) UpdateCategory(cat models.Category) bool {
	existing := s.doc.FindCategory(cat.ID)
	if existing == nil {
		return false
	}
	*existing = cat
	return s.persist()
}

// DeleteCategory removes a category and clears the reference from any site
// that pointed at it, so no site is left referencing a missing category.
func (s *Store) DeleteCategory(id string) bool {
	for i := range s.doc.Categories {
		if s.doc.Categories[i].ID == id {
			s.doc.Categories = append(s.doc.Categories[:i], s.doc.Categories[i+1:]...)
			for j := range s.doc.Sites {
				if s.doc.Sites[j].Category == id {
					s.doc.Sites[j].Category = ""
				}
			}
			return s.persist()
		}
	}
	return false
}
