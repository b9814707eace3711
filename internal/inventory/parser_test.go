package inventory

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseLines Tests
// ----------------------------------------------------------------------------

func TestParseLinesSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		// Quantity-prefixed lines
		{
			name:  "quantity name and price",
			input: "12 Caderno 20 folhas 5.50",
			want:  []Record{{Quantity: 12, Name: "Caderno 20 folhas", Price: 5.50}},
		},
		{
			name:  "quantity and name without price",
			input: "4 Tesoura escolar",
			want:  []Record{{Quantity: 4, Name: "Tesoura escolar", Price: 0}},
		},
		{
			name:  "quantity with comma decimal price",
			input: "2 Cola branca 3,25",
			want:  []Record{{Quantity: 2, Name: "Cola branca", Price: 3.25}},
		},
		{
			name:  "trailing integer read as price",
			input: "12 Caderno 20",
			want:  []Record{{Quantity: 12, Name: "Caderno", Price: 20}},
		},

		// Unquantified lines default to quantity 1
		{
			name:  "name and price without quantity",
			input: "Caderno 20 folhas 5,50",
			want:  []Record{{Quantity: 1, Name: "Caderno 20 folhas", Price: 5.50}},
		},
		{
			name:  "name only",
			input: "Apontador",
			want:  []Record{{Quantity: 1, Name: "Apontador", Price: 0}},
		},
		{
			name:  "name with trailing period and no price",
			input: "Borracha.",
			want:  []Record{{Quantity: 1, Name: "Borracha", Price: 0}},
		},

		// Malformed price tokens resolve to 0.0
		{
			name:  "question mark instead of price",
			input: "3 Lápis ?",
			want:  []Record{{Quantity: 3, Name: "Lápis ?", Price: 0}},
		},
		{
			name:  "price glued to name stays in name",
			input: "Caneta R$2,50",
			want:  []Record{{Quantity: 1, Name: "Caneta R$2,50", Price: 0}},
		},

		// Name cleanup
		{
			name:  "only one trailing period stripped",
			input: "Grampeador..",
			want:  []Record{{Quantity: 1, Name: "Grampeador.", Price: 0}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "   10 Papel sulfite 25.90   ",
			want:  []Record{{Quantity: 10, Name: "Papel sulfite", Price: 25.90}},
		},

		// Skipped lines
		{
			name:  "empty line",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  nil,
		},
		{
			name:  "shorter than three characters",
			input: "ab",
			want:  nil,
		},
		{
			name:  "two characters with multibyte rune",
			input: "lá",
			want:  nil,
		},
		{
			name:  "three characters with multibyte runes",
			input: "pão",
			want:  []Record{{Quantity: 1, Name: "pão", Price: 0}},
		},
		{
			name:  "two digits alone",
			input: "12",
			want:  nil,
		},

		// Dropped after cleanup
		{
			name:  "quantity with bare period name",
			input: "12 .",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := ParseLines(strings.NewReader(tt.input))
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", diags)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLines(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLinesMultiLine(t *testing.T) {
	input := strings.Join([]string{
		"12 Caderno 20 folhas 5.50",
		"",
		"Borracha.",
		"ab",
		"3 Lápis ?",
		"Caderno 20 folhas 5,50",
	}, "\n")

	want := []Record{
		{Quantity: 12, Name: "Caderno 20 folhas", Price: 5.50},
		{Quantity: 1, Name: "Borracha", Price: 0},
		{Quantity: 3, Name: "Lápis ?", Price: 0},
		{Quantity: 1, Name: "Caderno 20 folhas", Price: 5.50},
	}

	got, diags := ParseLines(strings.NewReader(input))
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseLines = %+v, want %+v", got, want)
	}
}

func TestParseLinesPreservesDuplicates(t *testing.T) {
	input := "Caneta azul 1.50\nCaneta azul 1.50\n"

	got, _ := ParseLines(strings.NewReader(input))
	if len(got) != 2 {
		t.Fatalf("expected 2 records for duplicate lines, got %d", len(got))
	}
	if got[0] != got[1] {
		t.Errorf("duplicate lines should parse identically: %+v vs %+v", got[0], got[1])
	}
}

func TestParseLinesIdempotent(t *testing.T) {
	input := "12 Caderno 5.50\nBorracha.\n3 Lápis ?\n"

	first, firstDiags := ParseLines(strings.NewReader(input))
	second, secondDiags := ParseLines(strings.NewReader(input))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("records differ across runs: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(firstDiags, secondDiags) {
		t.Errorf("diagnostics differ across runs: %+v vs %+v", firstDiags, secondDiags)
	}
}

func TestParseLinesQuantityOverflow(t *testing.T) {
	// A quantity too large for int fits the quantity-prefixed shape but
	// fails conversion; the line becomes a diagnostic, later lines parse.
	input := "99999999999999999999999999 Caderno 5.50\nBorracha.\n"

	records, diags := ParseLines(strings.NewReader(input))

	if len(records) != 1 || records[0].Name != "Borracha" {
		t.Fatalf("expected only the second line to parse, got %+v", records)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Line != 1 {
		t.Errorf("diagnostic line = %d, want 1", diags[0].Line)
	}
	if !strings.Contains(diags[0].Text, "Caderno") {
		t.Errorf("diagnostic should carry the raw line, got %q", diags[0].Text)
	}
	if diags[0].Message == "" {
		t.Error("diagnostic message should not be empty")
	}
}

func TestParseLinesOversizedLine(t *testing.T) {
	// A single absurdly long line becomes one diagnostic with its line
	// number; the lines around it still parse.
	input := "12 Caderno 5.50\n" +
		strings.Repeat("a", 70*1024) + "\n" +
		"Borracha.\n"

	records, diags := ParseLines(strings.NewReader(input))

	want := []Record{
		{Quantity: 12, Name: "Caderno", Price: 5.50},
		{Quantity: 1, Name: "Borracha", Price: 0},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %+v, want %+v", records, want)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Line != 2 {
		t.Errorf("diagnostic line = %d, want 2", diags[0].Line)
	}
	if diags[0].Message == "" {
		t.Error("diagnostic message should not be empty")
	}
}

func TestParseLinesReaderFailure(t *testing.T) {
	// A failing reader surfaces as a diagnostic, not a panic, and keeps
	// the records read before the failure.
	r := io.MultiReader(
		strings.NewReader("Borracha.\n"),
		&failingReader{err: errors.New("disk gone")},
	)

	records, diags := ParseLines(r)

	if len(records) != 1 || records[0].Name != "Borracha" {
		t.Fatalf("expected records read before failure, got %+v", records)
	}
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "disk gone") {
		t.Fatalf("expected read failure diagnostic, got %+v", diags)
	}
}

// failingReader returns its error on every Read call.
type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}

// ----------------------------------------------------------------------------
// Matcher cascade Tests
// ----------------------------------------------------------------------------

func TestMatchQuantityPrefixed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantQty  int
		wantName string
		wantRaw  string
	}{
		{
			name:     "full line",
			input:    "12 Caderno 20 folhas 5.50",
			wantOK:   true,
			wantQty:  12,
			wantName: "Caderno 20 folhas",
			wantRaw:  "5.50",
		},
		{
			name:     "no price",
			input:    "3 Lápis ?",
			wantOK:   true,
			wantQty:  3,
			wantName: "Lápis ?",
			wantRaw:  "",
		},
		{
			name:   "no leading quantity",
			input:  "Caderno 5.50",
			wantOK: false,
		},
		{
			name:   "digits without separator",
			input:  "123",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, err := matchQuantityPrefixed(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.quantity != tt.wantQty || m.name != tt.wantName || m.priceRaw != tt.wantRaw {
				t.Errorf("match = %+v, want qty=%d name=%q raw=%q", m, tt.wantQty, tt.wantName, tt.wantRaw)
			}
		})
	}
}

func TestMatchWholeLine(t *testing.T) {
	m, ok, err := matchWholeLine("anything at all")
	if err != nil || !ok {
		t.Fatalf("whole-line matcher must always match, got ok=%v err=%v", ok, err)
	}
	if m.quantity != 1 || m.name != "anything at all" || m.priceRaw != "" {
		t.Errorf("unexpected match: %+v", m)
	}
}

// ----------------------------------------------------------------------------
// Normalization Tests
// ----------------------------------------------------------------------------

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"5.50", 5.50},
		{"5,50", 5.50},
		{"20", 20},
		{"0", 0},
		{"1,2,3", 0}, // double separator is unparseable, falls back
	}

	for _, tt := range tests {
		if got := parsePrice(tt.input); got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Borracha  ", "Borracha"},
		{"Borracha.", "Borracha"},
		{"Borracha..", "Borracha."},
		{"Borracha .", "Borracha"},
		{".", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := cleanName(tt.input); got != tt.want {
			t.Errorf("cleanName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
