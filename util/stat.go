package util

import (
	"fmt"
	"io"

	"github.com/git-l10n/po2json/catalog"
)

// CatalogStats holds statistics for a PO file.
type CatalogStats struct {
	File         string
	Language     string
	Messages     int // Records, header excluded
	Entries      int // Members of the generated JSON object
	Plurals      int // Records with more than one translation
	Contexts     int // Records with msgctxt
	Fuzzy        int // Records marked fuzzy
	Untranslated int // Records with at least one empty msgstr
	RolledBack   int // Fuzzy markers dropped by an obsolete entry
	Diagnostics  []catalog.Diagnostic
}

// CountCatalogStats reads a PO file and returns its statistics.
func CountCatalogStats(poFile string) (*CatalogStats, error) {
	data, err := ReadPoFile(poFile)
	if err != nil {
		return nil, err
	}
	c, err := catalog.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", poFile, err)
	}
	stats := NewCatalogStats(c)
	stats.File = poFile
	return stats, nil
}

// NewCatalogStats counts the messages of c.
func NewCatalogStats(c *catalog.Catalog) *CatalogStats {
	stats := &CatalogStats{
		Language:    c.HeaderValue("Language"),
		Messages:    len(c.Messages),
		Entries:     c.Entries(),
		RolledBack:  c.RolledBack,
		Diagnostics: c.Diagnostics,
	}
	for _, m := range c.Messages {
		if len(m.Translations) > 1 {
			stats.Plurals++
		}
		if m.Context != "" {
			stats.Contexts++
		}
		if m.NeedsReview {
			stats.Fuzzy++
		}
		for _, s := range m.Translations {
			if s == "" {
				stats.Untranslated++
				break
			}
		}
	}
	return stats
}

// ReportCatalogStats writes one summary block per catalog to w.
func ReportCatalogStats(w io.Writer, stats []*CatalogStats) {
	for i, s := range stats {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := s.File
		if s.Language != "" {
			title = fmt.Sprintf("%s (%s)", s.File, LocaleDisplayName(s.Language))
		}
		fmt.Fprintf(w, "%s:\n", title)
		fmt.Fprintf(w, "  %-13s %d\n", "messages", s.Messages)
		fmt.Fprintf(w, "  %-13s %d\n", "json entries", s.Entries)
		fmt.Fprintf(w, "  %-13s %d\n", "plurals", s.Plurals)
		fmt.Fprintf(w, "  %-13s %d\n", "contexts", s.Contexts)
		fmt.Fprintf(w, "  %-13s %d\n", "fuzzy", s.Fuzzy)
		fmt.Fprintf(w, "  %-13s %d\n", "untranslated", s.Untranslated)
		if s.RolledBack > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", "rolled back", s.RolledBack)
		}
		if len(s.Diagnostics) > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", "skipped lines", len(s.Diagnostics))
		}
	}
}
