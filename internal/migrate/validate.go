package migrate

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

// Validate runs structural checks against a raw document and returns every
// violation found, not just the first. A document passing Validate decodes
// cleanly into models.Document.
func Validate(doc map[string]any) (bool, []string) {
	var errs []string

	sites, ok := doc["sites"].([]any)
	if !ok {
		errs = append(errs, "sites is not a sequence")
	}
	if _, ok := doc["categories"].([]any); !ok {
		errs = append(errs, "categories is not a sequence")
	}

	for i, s := range sites {
		site, ok := s.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("site %d is not an object", i))
			continue
		}
		if v, _ := site["id"].(string); v == "" {
			errs = append(errs, fmt.Sprintf("site %d has no id", i))
		}
		if v, _ := site["name"].(string); v == "" {
			errs = append(errs, fmt.Sprintf("site %d has no name", i))
		}
		if v, _ := site["url"].(string); v == "" {
			errs = append(errs, fmt.Sprintf("site %d has no url", i))
		}
		if _, ok := site["credentials"].([]any); !ok {
			errs = append(errs, fmt.Sprintf("site %d credentials is not a sequence", i))
		}
	}

	return len(errs) == 0, errs
}

// Repair best-effort reconstructs a usable document from a damaged one.
// Missing top-level fields get schema defaults. Sites lacking id or name
// and credentials lacking id or email are dropped rather than patched with
// fabricated identifiers. Repair never fails; data may be lost.
func Repair(doc map[string]any, now time.Time) map[string]any {
	if doc == nil {
		doc = map[string]any{}
	}

	if v, _ := doc["version"].(string); v == "" {
		doc["version"] = models.CurrentVersion
	}
	if v, _ := doc["lastReset"].(string); v == "" {
		doc["lastReset"] = datex.Today(now)
	}
	if _, ok := doc["settings"].(map[string]any); !ok {
		doc["settings"] = map[string]any{}
	}
	if _, ok := doc["analytics"].(map[string]any); !ok {
		doc["analytics"] = map[string]any{}
	}
	if _, ok := doc["categories"].([]any); !ok {
		cats := make([]any, 0)
		for _, c := range models.DefaultCategories() {
			cats = append(cats, map[string]any{
				"id": c.ID, "name": c.Name, "color": c.Color, "icon": c.Icon, "order": c.Order,
			})
		}
		doc["categories"] = cats
	}

	rawSites, _ := doc["sites"].([]any)
	kept := make([]any, 0, len(rawSites))
	for _, s := range rawSites {
		site, ok := s.(map[string]any)
		if !ok {
			continue
		}
		id, _ := site["id"].(string)
		name, _ := site["name"].(string)
		if id == "" || name == "" {
			continue
		}
		if _, ok := site["url"].(string); !ok {
			site["url"] = ""
		}
		site["credentials"] = repairCredentials(site["credentials"])
		kept = append(kept, site)
	}
	doc["sites"] = kept

	return doc
}

func repairCredentials(raw any) []any {
	creds, _ := raw.([]any)
	kept := make([]any, 0, len(creds))
	for _, c := range creds {
		cred, ok := c.(map[string]any)
		if !ok {
			continue
		}
		id, _ := cred["id"].(string)
		email, _ := cred["email"].(string)
		if id == "" || email == "" {
			continue
		}
		kept = append(kept, cred)
	}
	return kept
}
