package migrate

import (
	"github.com/dmitrijs2005/sitekeeper/internal/models"
	"github.com/google/uuid"
)

// defaultSteps is the full upgrade chain. Every step tolerates documents
// that skipped intermediate versions or were hand-edited: it re-checks each
// structure it touches instead of trusting earlier steps.
func defaultSteps() []Step {
	return []Step{
		{Version: "1.1.0", Apply: stepCategories},
		{Version: "1.5.0", Apply: stepCredentials},
		{Version: "2.0.0", Apply: stepAnalytics},
		{Version: "2.1.0", Apply: stepMetadata},
	}
}

// stepCategories introduces the category list and replaces the legacy
// per-site "checked" flag with a checkedInOn timestamp. Legacy documents
// only recorded a boolean, so the reconstructed timestamp points at
// midnight of the last reset date.
func stepCategories(doc map[string]any) map[string]any {
	if _, ok := doc["categories"].([]any); !ok {
		cats := make([]any, 0)
		for _, c := range models.DefaultCategories() {
			cats = append(cats, map[string]any{
				"id": c.ID, "name": c.Name, "color": c.Color, "icon": c.Icon, "order": c.Order,
			})
		}
		doc["categories"] = cats
	}

	lastReset, _ := doc["lastReset"].(string)
	for _, site := range sitesOf(doc) {
		if checked, ok := site["checked"].(bool); ok {
			if checked && site["checkedInOn"] == nil && lastReset != "" {
				site["checkedInOn"] = lastReset + "T00:00:00Z"
			}
			delete(site, "checked")
		}
	}
	return doc
}

// stepCredentials wraps the legacy single email/password pair of each site
// into a credentials list and moves the site-level check-in state onto the
// new credential.
func stepCredentials(doc map[string]any) map[string]any {
	for _, site := range sitesOf(doc) {
		creds, ok := site["credentials"].([]any)
		if !ok {
			cred := map[string]any{
				"id":    uuid.NewString(),
				"label": "default",
			}
			if email, ok := site["email"].(string); ok {
				cred["email"] = email
			}
			if password, ok := site["password"].(string); ok {
				cred["password"] = password
			}
			if v, ok := site["checkedInOn"]; ok {
				cred["checkedInOn"] = v
			}
			creds = []any{cred}
			delete(site, "email")
			delete(site, "password")
			delete(site, "checkedInOn")
		}
		for _, c := range creds {
			cred, ok := c.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := cred["customFields"].([]any); !ok {
				cred["customFields"] = []any{}
			}
			if _, ok := cred["checkInHistory"].([]any); !ok {
				cred["checkInHistory"] = []any{}
			}
		}
		site["credentials"] = creds
	}
	return doc
}

// stepAnalytics introduces the zeroed analytics block and the security
// settings subsection.
func stepAnalytics(doc map[string]any) map[string]any {
	if _, ok := doc["analytics"].(map[string]any); !ok {
		doc["analytics"] = map[string]any{
			"totalCheckIns": 0,
			"currentStreak": 0,
			"longestStreak": 0,
			"averageDaily":  0,
			"sitesAdded":    0,
			"sitesArchived": 0,
			"lastCheckIn":   nil,
		}
	}

	settings, ok := doc["settings"].(map[string]any)
	if !ok {
		settings = map[string]any{}
		doc["settings"] = settings
	}
	if _, ok := settings["security"].(map[string]any); !ok {
		settings["security"] = map[string]any{
			"encryptExports": false,
			"lockTimeout":    0,
		}
	}
	return doc
}

// stepMetadata adds the per-site metadata block and the credential
// strength/breached fields.
func stepMetadata(doc map[string]any) map[string]any {
	for _, site := range sitesOf(doc) {
		if _, ok := site["metadata"].(map[string]any); !ok {
			site["metadata"] = map[string]any{
				"loginFrequency":     "",
				"importance":         "normal",
				"lastIssue":          nil,
				"averageCheckInTime": nil,
			}
		}
		creds, _ := site["credentials"].([]any)
		for _, c := range creds {
			cred, ok := c.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := cred["strength"].(string); !ok {
				cred["strength"] = "unknown"
			}
			if _, ok := cred["breached"].(bool); !ok {
				cred["breached"] = false
			}
		}
	}
	return doc
}

// sitesOf iterates the document's site maps, skipping anything that is not
// an object.
func sitesOf(doc map[string]any) []map[string]any {
	raw, ok := doc["sites"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, s := range raw {
		if site, ok := s.(map[string]any); ok {
			out = append(out, site)
		}
	}
	return out
}
