package catalog

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	// msgctxt, msgid, msgid_plural, msgstr and msgstr[N] lines
	reKeyword = regexp.MustCompile(`^msg(ctxt|id_plural|id|str\[[0-9]+\]|str)\s+"(.*)"$`)
)

// Diagnostic records an irregular line that was skipped during parsing.
type Diagnostic struct {
	Line    int // 1-based
	Text    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Message, d.Text)
}

// Catalog is the ordered list of messages found in one PO file.
type Catalog struct {
	Messages []*Message
	// Header is the raw msgstr of the header entry, which is not converted.
	Header      string
	Diagnostics []Diagnostic
	// RolledBack counts fuzzy-only records discarded by an obsolete marker.
	RolledBack int
}

// Entries returns how many JSON members the catalog renders to.
func (c *Catalog) Entries() int {
	n := 0
	for _, m := range c.Messages {
		n += len(m.Translations)
	}
	return n
}

// HeaderValue returns the value of a "Name: value" line in the header entry.
func (c *Catalog) HeaderValue(name string) string {
	for _, line := range strings.Split(poUnescape(c.Header), "\n") {
		kv := strings.SplitN(line, ":", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), name) {
			return strings.TrimSpace(kv[1])
		}
	}
	return ""
}

type parser struct {
	catalog *Catalog
	current *Message
	// header receives the first msgid/msgstr pair and its continuations
	header     Message
	headerOpen bool
	ignoring   bool
	lineNo     int
}

// Parse folds PO lines into a catalog. The first msgid/msgstr pair is taken
// as the header entry and skipped. Irregular lines never fail the parse;
// they are reported in Catalog.Diagnostics.
func Parse(lines []string) *Catalog {
	p := parser{
		catalog:  &Catalog{},
		ignoring: true,
	}
	for i, line := range lines {
		p.lineNo = i + 1
		p.parseLine(line)
	}
	if len(p.header.Translations) > 0 {
		p.catalog.Header = p.header.Translations[0]
	}
	return p.catalog
}

// ParseString splits file on its line ending and parses it.
func ParseString(file string) (*Catalog, error) {
	lines, _, err := SplitLines(file)
	if err != nil {
		return nil, err
	}
	return Parse(lines), nil
}

func (p *parser) parseLine(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case isFuzzyMarker(trimmed):
		if p.ignoring {
			return
		}
		p.open()
		p.current.NeedsReview = true
	case strings.HasPrefix(trimmed, "#~"):
		// Only a bare fuzzy marker is rolled back, a record that already
		// got a msgctxt stays.
		if p.current != nil && !p.current.HasID() && p.current.Context == "" {
			p.rollback()
		}
	case strings.HasPrefix(trimmed, "#"):
	case trimmed == "":
	default:
		if m := reKeyword.FindStringSubmatch(trimmed); m != nil {
			p.keyword(m[1], m[2])
			return
		}
		p.continuation(unquote(trimmed))
	}
}

func (p *parser) keyword(kind, text string) {
	if p.ignoring {
		p.headerKeyword(kind, text)
		return
	}

	switch {
	case kind == "ctxt":
		if !p.mergeable() {
			p.open()
		}
		p.current.SetContext(text)
	case kind == "id":
		if !p.mergeable() {
			p.open()
		}
		p.current.SetID(text)
	case kind == "id_plural":
		if p.current == nil {
			p.diagnose(text, "msgid_plural without msgid")
			return
		}
		p.current.SetPlural()
	default:
		// msgstr and msgstr[N]
		if p.current == nil {
			p.diagnose(text, "msgstr without msgid")
			return
		}
		p.current.AddTranslation(text)
	}
}

func (p *parser) headerKeyword(kind, text string) {
	p.headerOpen = true
	switch {
	case kind == "ctxt":
		p.header.SetContext(text)
	case kind == "id":
		p.header.SetID(text)
	case kind == "id_plural":
		p.header.SetPlural()
	default:
		p.header.AddTranslation(text)
		p.ignoring = false
	}
}

func (p *parser) continuation(text string) {
	switch {
	case p.current != nil:
		if !p.current.Append(text) {
			p.diagnose(text, "continuation without field")
		}
	case p.headerOpen:
		if !p.header.Append(text) {
			p.diagnose(text, "continuation without field")
		}
	default:
		p.diagnose(text, "text outside of any entry")
	}
}

// mergeable reports whether a msgctxt or msgid can attach to the open record.
func (p *parser) mergeable() bool {
	return p.current != nil && !p.current.HasID()
}

func (p *parser) open() {
	p.current = &Message{}
	p.catalog.Messages = append(p.catalog.Messages, p.current)
	p.headerOpen = false
}

// rollback drops the open record, which is always the last one.
func (p *parser) rollback() {
	p.catalog.Messages = p.catalog.Messages[:len(p.catalog.Messages)-1]
	p.catalog.RolledBack++
	p.current = nil
}

func (p *parser) diagnose(text, msg string) {
	d := Diagnostic{Line: p.lineNo, Text: text, Message: msg}
	log.Debugf("po: %s", d)
	p.catalog.Diagnostics = append(p.catalog.Diagnostics, d)
}

// isFuzzyMarker matches "#, fuzzy" and flag comments that include fuzzy,
// such as "#, fuzzy, c-format".
func isFuzzyMarker(line string) bool {
	if line == "#, fuzzy" {
		return true
	}
	if !strings.HasPrefix(line, "#,") {
		return false
	}
	for _, flag := range strings.Split(line[2:], ",") {
		if strings.TrimSpace(flag) == "fuzzy" {
			return true
		}
	}
	return false
}

// unquote strips one pair of surrounding double quotes. A trailing quote
// that is escaped belongs to the text.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	if strings.HasSuffix(s, `"`) {
		body := s[:len(s)-1]
		if (len(body)-len(strings.TrimRight(body, `\`)))%2 == 0 {
			s = body
		}
	}
	return s
}
