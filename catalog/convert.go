package catalog

import (
	"errors"
	"strings"
)

// ErrNoLineEnding is wrapped by the FormatError returned for input without
// any line terminator.
var ErrNoLineEnding = errors.New("no valid line terminator")

// FormatError reports input that cannot be split into lines.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "bad po format: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Options controls Convert.
type Options struct {
	// Minify drops all structural whitespace from the output.
	Minify bool
	// ExpandForDisplay pads values with hyphens to the expected length of a
	// translation, for testing UI layouts.
	ExpandForDisplay bool
	// FlagUnreviewed wraps fuzzy and untranslated values in "# ... #".
	FlagUnreviewed bool
	// OnComplete, if set, is called after a successful conversion.
	OnComplete func(*Result)
}

// Result describes a finished conversion.
type Result struct {
	Newline     string
	Messages    int
	Entries     int
	RolledBack  int
	Diagnostics []Diagnostic
}

// DetectLineEnding returns the first of "\r\n", "\n" or "\r" found in file.
func DetectLineEnding(file string) (string, error) {
	i := strings.IndexAny(file, "\r\n")
	if i < 0 {
		return "", &FormatError{Err: ErrNoLineEnding}
	}
	if file[i] == '\r' && i+1 < len(file) && file[i+1] == '\n' {
		return "\r\n", nil
	}
	return file[i : i+1], nil
}

// SplitLines splits file on its own line ending.
func SplitLines(file string) (lines []string, newline string, err error) {
	newline, err = DetectLineEnding(file)
	if err != nil {
		return nil, "", err
	}
	return strings.Split(file, newline), newline, nil
}

// Render serializes the catalog as a messages.json object.
func (c *Catalog) Render(layout Layout, opts RenderOptions) string {
	var fragments []string
	for _, m := range c.Messages {
		fragments = append(fragments, m.Render(layout, opts)...)
	}
	if len(fragments) == 0 {
		return "{}"
	}
	return "{" + layout.Newline +
		strings.Join(fragments, ","+layout.Newline) +
		layout.Newline + "}"
}

// Convert turns the content of a PO file into a messages.json object. The
// output reuses the line ending of file unless opts.Minify is set.
func Convert(file string, opts Options) (string, error) {
	lines, newline, err := SplitLines(file)
	if err != nil {
		return "", err
	}

	c := Parse(lines)
	out := c.Render(NewLayout(newline, opts.Minify), RenderOptions{
		ExpandForDisplay: opts.ExpandForDisplay,
		FlagUnreviewed:   opts.FlagUnreviewed,
	})

	if opts.OnComplete != nil {
		opts.OnComplete(&Result{
			Newline:     newline,
			Messages:    len(c.Messages),
			Entries:     c.Entries(),
			RolledBack:  c.RolledBack,
			Diagnostics: c.Diagnostics,
		})
	}
	return out, nil
}
