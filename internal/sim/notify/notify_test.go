package notify

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

type fakeWorld struct {
	lang map[int]string
	sent []Envelope
}

func (w *fakeWorld) PlanetName(id int) string {
	return map[int]string{7: "Vega"}[id]
}

func (w *fakeWorld) ShipName(id int) string {
	return map[int]string{12: "Hauler"}[id]
}

func (w *fakeWorld) RaceAdjective(player int) string {
	return map[int]string{3: "Birdman"}[player]
}

func (w *fakeWorld) PlayerLanguage(player int) string { return w.lang[player] }

func (w *fakeWorld) SendMessage(to int, body []byte) error {
	w.sent = append(w.sent, Envelope{To: to, Body: append([]byte(nil), body...)})
	return nil
}

func TestFormat_Placeholders(t *testing.T) {
	var m Message
	m.Format("%0I|%0d|%1P|%2S|%3A|%%|%9d|%9P.", &fakeWorld{}, 7, 7, 12, 3)
	got := Decode(m.Bytes())
	want := "0007|7|Vega|Hauler|Birdman|%|0|."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMessage_NewlinesAndFiltering(t *testing.T) {
	var m Message
	m.Add("a\nb\n")
	// U+25A0 encodes to 254, above the cipher range; U+65E5 has no CP437 form.
	m.AddChar(rune(0x25A0))
	m.AddChar(rune(0x65E5))
	m.Add("ü")
	if !bytes.Equal(m.Bytes(), []byte{'a', 13, 'b', 13, 0x81}) {
		t.Fatalf("bytes %v", m.Bytes())
	}
	if m.Lines() != 2 {
		t.Fatalf("lines %d", m.Lines())
	}
	if Decode(m.Bytes()) != "a\nb\nü" {
		t.Fatalf("decode %q", Decode(m.Bytes()))
	}
}

func TestMessage_LengthCap(t *testing.T) {
	var m Message
	m.Add(strings.Repeat("x", 2*MaxMessageLength))
	if n := len(m.Bytes()); n != MaxMessageLength-1 {
		t.Fatalf("len %d", n)
	}
}

func TestLanguageSelection(t *testing.T) {
	cases := map[string]language.Tag{
		"":        language.English,
		"de":      language.German,
		"de-AT":   language.German,
		"fr":      language.English,
		"garbage": language.English,
	}
	for in, want := range cases {
		if got := LanguageOf(in); got != want {
			t.Fatalf("LanguageOf(%q)=%v want %v", in, got, want)
		}
	}
}

func TestCatalogsComplete(t *testing.T) {
	for _, c := range catalogs {
		for k := Key(0); k < numKeys; k++ {
			if c.templates[k] == "" {
				t.Fatalf("%v: key %d has no text", c.tag, k)
			}
		}
	}
}

func TestCanned_LocalizedPerPlayer(t *testing.T) {
	w := &fakeWorld{lang: map[int]string{2: "de"}}
	n := New(w, nil)
	n.LoadSuccess(1, 12, 7, 5)
	n.LoadSuccess(2, 12, 7, 5)
	if len(w.sent) != 2 {
		t.Fatalf("sent %d", len(w.sent))
	}
	en, de := Decode(w.sent[0].Body), Decode(w.sent[1].Body)
	if !strings.Contains(en, "loaded 5 parts") || !strings.Contains(en, "(-s0012)") {
		t.Fatalf("english: %q", en)
	}
	if !strings.Contains(de, "5 Teile") {
		t.Fatalf("german: %q", de)
	}
}

func TestPaged_ContinuesPastLineBudget(t *testing.T) {
	w := &fakeWorld{}
	n := New(w, nil)
	p := n.NewPaged(1, TransportReport, TransportReportContinued, 12, 100)
	for i := 0; i < 20; i++ {
		p.AddLine("  1 x Laser [UB1]\n")
	}
	p.Send()
	if len(w.sent) != 2 {
		t.Fatalf("pages %d", len(w.sent))
	}
	first, second := Decode(w.sent[0].Body), Decode(w.sent[1].Body)
	if !strings.HasSuffix(first, "(continued on next page)\n") {
		t.Fatalf("first page: %q", first)
	}
	if !strings.Contains(second, "(continued inventory)") {
		t.Fatalf("second page: %q", second)
	}
	if strings.Count(first, "\n") != MaxMessageLines+1 {
		t.Fatalf("first page has %d lines", strings.Count(first, "\n"))
	}
}

func TestWriteOutbox(t *testing.T) {
	dir := t.TempDir()
	var m Message
	m.Add("hi\nthere")
	if err := WriteOutbox(dir, []Envelope{{To: 3, Body: m.Bytes()}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteOutbox(dir, []Envelope{{To: 3, Body: []byte("x")}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, OutboxDir, "player3.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "hi\r\nthere\r\n\f\r\nx\r\n\f\r\n" {
		t.Fatalf("content %q", b)
	}
}
