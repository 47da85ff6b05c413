// Package catalog converts gettext PO catalogs into messages.json locale files.
package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ContextSeparator joins msgctxt and msgid in a message key.
const ContextSeparator = "\x04"

// field names the part of a message that received content last.
type field int

const (
	fieldNone field = iota
	fieldContext
	fieldID
	fieldPlural
	fieldTranslation
)

func (f field) String() string {
	switch f {
	case fieldContext:
		return "msgctxt"
	case fieldID:
		return "msgid"
	case fieldPlural:
		return "msgid_plural"
	case fieldTranslation:
		return "msgstr"
	}
	return "none"
}

// Message holds one translatable string and its translations.
// ID, Context and Translations keep the raw PO text, escapes included.
type Message struct {
	ID           string
	Context      string
	Translations []string
	NeedsReview  bool

	last field
	// index into Translations when last is fieldTranslation
	lastIndex int
}

// SetContext replaces the context and routes continuation lines to it.
func (m *Message) SetContext(s string) {
	m.Context = s
	m.last = fieldContext
}

// SetID replaces the identifier and routes continuation lines to it.
func (m *Message) SetID(s string) {
	m.ID = s
	m.last = fieldID
}

// SetPlural records that a msgid_plural was seen. Its text is not kept, and
// continuation lines following it are discarded.
func (m *Message) SetPlural() {
	m.last = fieldPlural
}

// AddTranslation appends a translation and routes continuation lines to it.
func (m *Message) AddTranslation(s string) {
	m.Translations = append(m.Translations, s)
	m.last = fieldTranslation
	m.lastIndex = len(m.Translations) - 1
}

// Append adds a continuation line to the field written last. It returns
// false if there is no field to append to.
func (m *Message) Append(s string) bool {
	switch m.last {
	case fieldContext:
		m.Context += s
	case fieldID:
		m.ID += s
	case fieldTranslation:
		m.Translations[m.lastIndex] += s
	case fieldPlural:
		// msgid_plural text is not kept
	default:
		return false
	}
	return true
}

// HasID reports whether any identifier content was attached.
func (m *Message) HasID() bool {
	return m.ID != ""
}

// Key returns the normalized key of the message, without the plural index.
func (m *Message) Key() string {
	if m.Context != "" {
		return NormalizeKey(m.Context + ContextSeparator + m.ID)
	}
	return NormalizeKey(m.ID)
}

// NormalizeKey maps s onto the alphabet [a-z0-9_]. The escapes \n and \r
// become _10_ and _13_, every other character outside [a-z0-9] becomes
// _<code point>_.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteString("_10_")
				i += 2
				continue
			case 'r':
				b.WriteString("_13_")
				i += 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte('_')
		}
		i += size
	}
	return b.String()
}

// Layout holds the structural whitespace of the generated JSON.
type Layout struct {
	Newline string
	Indent  string
	Space   string
}

// NewLayout returns the layout for the given input line ending.
func NewLayout(newline string, minify bool) Layout {
	if minify {
		return Layout{}
	}
	return Layout{Newline: newline, Indent: "\t", Space: " "}
}

// RenderOptions controls how message values are rendered.
type RenderOptions struct {
	ExpandForDisplay bool
	FlagUnreviewed   bool
}

// Render returns one JSON object member per translation of m.
func (m *Message) Render(layout Layout, opts RenderOptions) []string {
	var (
		fragments  = make([]string, 0, len(m.Translations))
		key        = m.Key()
		unreviewed = m.NeedsReview
	)

	for i, raw := range m.Translations {
		if raw == "" {
			raw = m.ID
			unreviewed = true
		}
		value := poUnescape(raw)
		if opts.FlagUnreviewed && unreviewed {
			value = "# " + value + " #"
		}
		if opts.ExpandForDisplay {
			value += strings.Repeat("-", ExpansionPadding(utf8.RuneCountInString(value)))
		}

		var b strings.Builder
		b.WriteString(jsonString(key + strconv.Itoa(i)))
		b.WriteString(":")
		b.WriteString(layout.Space)
		b.WriteString("{")
		b.WriteString(layout.Newline)
		b.WriteString(layout.Indent)
		b.WriteString(`"message":`)
		b.WriteString(layout.Space)
		b.WriteString(jsonString(value))
		b.WriteString(layout.Newline)
		b.WriteString("}")
		fragments = append(fragments, b.String())
	}
	return fragments
}

// ExpansionPadding returns how many characters a string of length l is
// expected to grow by once translated, used to pad values for layout tests.
func ExpansionPadding(l int) int {
	if l <= 1 {
		return 0
	}
	n := float64(l)
	pad := math.Round((3/math.Log(n)+0.7)*n - n)
	if pad < 0 {
		return 0
	}
	return int(pad)
}

// jsonString encodes s as a JSON string literal, leaving <, > and & as is.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string never fails.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// poUnescape decodes PO escape sequences in s into real characters.
// PO uses \n (newline), \t (tab), \r (carriage return), \" (quote), \\ (backslash).
func poUnescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
			case 't':
				b.WriteByte('\t')
				i++
			case 'r':
				b.WriteByte('\r')
				i++
			case '"':
				b.WriteByte('"')
				i++
			case '\\':
				b.WriteByte('\\')
				i++
			default:
				b.WriteByte(s[i])
			}
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
