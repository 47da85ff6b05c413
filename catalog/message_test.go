package catalog

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"lowercase ascii is kept", "hello", "hello"},
		{"digits are kept", "abc123", "abc123"},
		{"uppercase is escaped", "Hello", "_72_ello"},
		{"space and punctuation", "a b.", "a_32_b_46_"},
		{"escaped newline", `one\ntwo`, "one_10_two"},
		{"escaped carriage return", `one\rtwo`, "one_13_two"},
		{"escaped quote", `say \"hi\"`, "say_32__92__34_hi_92__34_"},
		{"context separator", "menu\x04open", "menu_4_open"},
		{"non-ascii", "ü", "_252_"},
		{"underscore", "a_b", "a_95_b"},
		{"trailing backslash", `a\`, "a_92_"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeKey(tc.in); got != tc.want {
				t.Errorf("NormalizeKey(%q): got %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	for _, s := range []string{"", "a", "hello", "file0", "abcdefghijklmnopqrstuvwxyz0123456789"} {
		once := NormalizeKey(s)
		if once != s {
			t.Errorf("NormalizeKey(%q) = %q, expected identity", s, once)
		}
		if twice := NormalizeKey(once); twice != once {
			t.Errorf("NormalizeKey not idempotent for %q: %q != %q", s, twice, once)
		}
	}
}

func TestMessageKey(t *testing.T) {
	plain := Message{ID: "open"}
	menu := Message{ID: "open", Context: "menu"}
	file := Message{ID: "open", Context: "file"}

	if got := plain.Key(); got != "open" {
		t.Errorf("plain key: got %q", got)
	}
	if got := menu.Key(); got != "menu_4_open" {
		t.Errorf("menu key: got %q", got)
	}
	if menu.Key() == file.Key() {
		t.Errorf("keys for different contexts must differ: %q", menu.Key())
	}
	if !strings.HasSuffix(menu.Key(), "_4_open") || !strings.HasSuffix(file.Key(), "_4_open") {
		t.Errorf("keys should only differ in the context part: %q, %q", menu.Key(), file.Key())
	}
}

func TestMessageAppend(t *testing.T) {
	m := Message{}
	if m.Append("lost") {
		t.Fatal("Append on a fresh message should fail")
	}

	m.SetContext("ctx")
	m.Append("-more")
	m.SetID("")
	m.Append("Multi ")
	m.Append("line")
	m.SetPlural()
	if !m.Append("plural text") {
		t.Error("Append after msgid_plural should be accepted")
	}
	m.AddTranslation("")
	m.Append("eins")
	m.AddTranslation("zwei")
	m.Append(" drei")

	if m.Context != "ctx-more" {
		t.Errorf("context: got %q", m.Context)
	}
	if m.ID != "Multi line" {
		t.Errorf("id: got %q", m.ID)
	}
	if len(m.Translations) != 2 || m.Translations[0] != "eins" || m.Translations[1] != "zwei drei" {
		t.Errorf("translations: got %q", m.Translations)
	}
}

func TestMessageRender(t *testing.T) {
	layout := NewLayout("\n", false)

	for _, tc := range []struct {
		name string
		msg  Message
		opts RenderOptions
		want []string
	}{
		{
			name: "singular",
			msg:  Message{ID: "hello", Translations: []string{"hallo"}},
			want: []string{"\"hello0\": {\n\t\"message\": \"hallo\"\n}"},
		},
		{
			name: "empty translation falls back to id",
			msg:  Message{ID: "Save", Translations: []string{""}},
			want: []string{"\"_83_ave0\": {\n\t\"message\": \"Save\"\n}"},
		},
		{
			name: "empty translation is flagged",
			msg:  Message{ID: "Save", Translations: []string{""}},
			opts: RenderOptions{FlagUnreviewed: true},
			want: []string{"\"_83_ave0\": {\n\t\"message\": \"# Save #\"\n}"},
		},
		{
			name: "fuzzy is flagged",
			msg:  Message{ID: "open", Translations: []string{"öffnen"}, NeedsReview: true},
			opts: RenderOptions{FlagUnreviewed: true},
			want: []string{"\"open0\": {\n\t\"message\": \"# öffnen #\"\n}"},
		},
		{
			name: "fuzzy is not flagged without option",
			msg:  Message{ID: "open", Translations: []string{"öffnen"}, NeedsReview: true},
			want: []string{"\"open0\": {\n\t\"message\": \"öffnen\"\n}"},
		},
		{
			name: "plural forms",
			msg:  Message{ID: "file", Translations: []string{"Datei", "Dateien"}},
			want: []string{
				"\"file0\": {\n\t\"message\": \"Datei\"\n}",
				"\"file1\": {\n\t\"message\": \"Dateien\"\n}",
			},
		},
		{
			name: "untranslated plural marks later forms",
			msg:  Message{ID: "file", Translations: []string{"", "Dateien"}},
			opts: RenderOptions{FlagUnreviewed: true},
			want: []string{
				"\"file0\": {\n\t\"message\": \"# file #\"\n}",
				"\"file1\": {\n\t\"message\": \"# Dateien #\"\n}",
			},
		},
		{
			name: "escapes",
			msg:  Message{ID: "quote", Translations: []string{`a \"b\"\nc\td <e>`}},
			want: []string{"\"quote0\": {\n\t\"message\": \"a \\\"b\\\"\\nc\\td <e>\"\n}"},
		},
		{
			name: "expand for display",
			msg:  Message{ID: "ok", Translations: []string{"OK"}},
			opts: RenderOptions{ExpandForDisplay: true},
			want: []string{"\"ok0\": {\n\t\"message\": \"OK--------\"\n}"},
		},
		{
			name: "no translations",
			msg:  Message{ID: "orphan"},
			want: []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.msg.Render(layout, tc.opts)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d fragments, want %d: %q", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("fragment %d:\ngot  %q\nwant %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestMessageRenderMinify(t *testing.T) {
	m := Message{ID: "hello", Translations: []string{"hallo"}}
	got := m.Render(NewLayout("\r\n", true), RenderOptions{})
	want := `"hello0":{"message":"hallo"}`
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpansionPadding(t *testing.T) {
	for _, tc := range []struct {
		l    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 8},
		{10, int(math.Round((3/math.Log(10)+0.7)*10 - 10))},
		{100, int(math.Round((3/math.Log(100)+0.7)*100 - 100))},
	} {
		if got := ExpansionPadding(tc.l); got != tc.want {
			t.Errorf("ExpansionPadding(%d): got %d, want %d", tc.l, got, tc.want)
		}
	}
	if got := ExpansionPadding(10); got != 10 {
		t.Errorf("ExpansionPadding(10): got %d, want 10", got)
	}
}

func TestPoUnescape(t *testing.T) {
	for in, want := range map[string]string{
		`plain`:       "plain",
		`a\nb`:        "a\nb",
		`a\tb`:        "a\tb",
		`a\rb`:        "a\rb",
		`\"q\"`:       `"q"`,
		`back\\slash`: `back\slash`,
		`unknown\x`:   `unknown\x`,
		`trailing\`:   `trailing\`,
	} {
		if got := poUnescape(in); got != want {
			t.Errorf("poUnescape(%q): got %q, want %q", in, got, want)
		}
	}
}
