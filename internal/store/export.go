package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sitekeeper/internal/common"
	"github.com/dmitrijs2005/sitekeeper/internal/cryptox"
	"github.com/dmitrijs2005/sitekeeper/internal/datex"
	"github.com/dmitrijs2005/sitekeeper/internal/models"
)

// ExportFormat selects the serialization of ExportData.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ExportOptions controls ExportData. Encrypt only applies to JSON; CSV
// export is never encrypted.
type ExportOptions struct {
	Format         ExportFormat
	IncludeHistory bool
	Encrypt        bool
	Password       []byte
}

// exportDocument is the JSON export shape: the document plus an export
// timestamp. The document's own version field travels with it.
type exportDocument struct {
	models.Document
	ExportedAt string `json:"exportedAt"`
}

// ExportData serializes the full document in the requested format. With
// IncludeHistory false every credential's check-in history is stripped from
// the copy; the stored document is never modified. With Encrypt true the
// JSON is wrapped in a crypto envelope.
func (s *Store) ExportData(opts ExportOptions) (string, error) {
	switch opts.Format {
	case FormatCSV:
		return s.exportCSV(), nil
	case FormatJSON, "":
		return s.exportJSON(opts)
	default:
		return "", fmt.Errorf("%w: unknown export format %q", common.ErrValidation, opts.Format)
	}
}

func (s *Store) exportJSON(opts ExportOptions) (string, error) {
	doc := s.doc.Clone()
	if !opts.IncludeHistory {
		for i := range doc.Sites {
			for j := range doc.Sites[i].Credentials {
				doc.Sites[i].Credentials[j].CheckInHistory = []models.CheckInRecord{}
			}
		}
	}

	out := exportDocument{Document: *doc, ExportedAt: datex.Timestamp(s.now())}

	if opts.Encrypt {
		if len(opts.Password) == 0 {
			return "", fmt.Errorf("%w: encryption requires a password", common.ErrValidation)
		}
		env, err := cryptox.EncryptWithIterations(out, opts.Password, s.iterations)
		if err != nil {
			return "", err
		}
		b, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// exportCSV renders one row per (site, credential) pair with every field
// double-quoted. encoding/csv is not used because it quotes only when
// required, and the export contract quotes unconditionally.
func (s *Store) exportCSV() string {
	var b strings.Builder
	b.WriteString(`"Site Name","URL","Category","Email","Label","Tags"` + "\n")

	for i := range s.doc.Sites {
		site := &s.doc.Sites[i]
		category := ""
		if cat := s.doc.FindCategory(site.Category); cat != nil {
			category = cat.Name
		}
		for j := range site.Credentials {
			cred := &site.Credentials[j]
			row := []string{
				site.Name,
				site.URL,
				category,
				cred.Email,
				cred.Label,
				strings.Join(site.Tags, ";"),
			}
			for k, field := range row {
				if k > 0 {
					b.WriteByte(',')
				}
				b.WriteString(csvQuote(field))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
