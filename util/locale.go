package util

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LocaleFromPoFile derives the locale directory name, such as "de", "pt_BR"
// or "es_419", from the name of a PO file.
func LocaleFromPoFile(path string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("invalid locale %q in file name %s: %w", name, path, err)
	}

	base, _ := tag.Base()
	locale := base.String()
	if region, conf := tag.Region(); conf == language.Exact {
		locale += "_" + region.String()
	}
	return locale, nil
}

// LocaleDisplayName returns the English name of a locale, for example
// "Brazilian Portuguese" for "pt_BR". Unknown locales are returned as is.
func LocaleDisplayName(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return locale
	}
	if name := display.Tags(language.English).Name(tag); name != "" {
		return name
	}
	return locale
}
