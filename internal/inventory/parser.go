package inventory

// parser.go recovers structured product records from the loosely formatted
// inventory text file the shop keeps by hand. Each line is one product in an
// informal grammar:
//
//	[quantity] name... [price]
//
// where quantity is an optional leading integer, price an optional trailing
// number using either '.' or ',' as decimal separator, and everything in
// between is the product name. Extraction is a cascade of matchers applied
// in order; the first one that matches wins. Lines are independent: a bad
// line produces a diagnostic and never stops the pass.

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// minLineLen is the minimum trimmed length, in characters, for a line to
// be considered. Anything shorter is noise (stray punctuation, blank
// separators) and is skipped without a diagnostic.
const minLineLen = 3

// maxLineLen caps how many bytes a single line may hold. Longer lines are
// discarded with a diagnostic instead of aborting the whole pass.
const maxLineLen = 64 * 1024

// Record is one parsed inventory line, ready for insertion or for the
// {"products":[...]} interchange document.
type Record struct {
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// Diagnostic reports a line that could not be converted into a Record.
type Diagnostic struct {
	Line    int    // 1-based line number in the source
	Text    string // the trimmed line as read
	Message string
}

var (
	// quantity-prefixed: leading integer, non-greedy name, optional
	// trailing numeric token. The lazy body keeps a trailing price out of
	// the name.
	quantityPrefixedRe = regexp.MustCompile(`^(\d+)\s+(.*?)(?:\s+(\d+(?:[.,]\d+)?))?$`)

	// unquantified: same shape without the leading integer; quantity
	// defaults to 1.
	unquantifiedRe = regexp.MustCompile(`^(.*?)(?:\s+(\d+(?:[.,]\d+)?))?$`)
)

// lineMatch is the raw extraction from a single line before numeric
// normalization and name cleanup.
type lineMatch struct {
	quantity int
	name     string
	priceRaw string // empty when the line carried no price token
}

// matcher attempts to extract a lineMatch from a trimmed line. It returns
// ok=false when the line does not fit this matcher's shape, and a non-nil
// error for values the shape accepted but Go cannot represent (e.g. a
// quantity overflowing int).
type matcher func(line string) (m lineMatch, ok bool, err error)

// matchers are tried in order; the first match wins. The whole-line
// matcher is practically unreachable behind the unquantified one, which
// accepts almost any text, but it stays as the final safety net so a
// surprising line still imports as a bare name.
var matchers = []matcher{
	matchQuantityPrefixed,
	matchUnquantified,
	matchWholeLine,
}

func matchQuantityPrefixed(line string) (lineMatch, bool, error) {
	groups := quantityPrefixedRe.FindStringSubmatch(line)
	if groups == nil {
		return lineMatch{}, false, nil
	}
	qty, err := strconv.Atoi(groups[1])
	if err != nil {
		return lineMatch{}, true, err
	}
	return lineMatch{quantity: qty, name: groups[2], priceRaw: groups[3]}, true, nil
}

func matchUnquantified(line string) (lineMatch, bool, error) {
	groups := unquantifiedRe.FindStringSubmatch(line)
	if groups == nil {
		return lineMatch{}, false, nil
	}
	return lineMatch{quantity: 1, name: groups[1], priceRaw: groups[2]}, true, nil
}

func matchWholeLine(line string) (lineMatch, bool, error) {
	return lineMatch{quantity: 1, name: line}, true, nil
}

// ParseLines reads one product description per line from r and returns the
// recovered records in input order, together with diagnostics for lines
// that matched a shape but could not be converted. It holds no state
// between lines or between calls: the same input always yields the same
// output.
func ParseLines(r io.Reader) ([]Record, []Diagnostic) {
	var (
		records []Record
		diags   []Diagnostic
	)

	br := bufio.NewReaderSize(r, maxLineLen)
	lineNum := 0
	for {
		lineNum++
		raw, tooLong, err := readLine(br)

		if tooLong {
			diags = append(diags, Diagnostic{Line: lineNum, Message: "line too long, skipped"})
		} else if err == nil || raw != "" {
			line := strings.TrimSpace(raw)
			if utf8.RuneCountInString(line) >= minLineLen {
				rec, perr := parseLine(line)
				switch {
				case perr != nil:
					diags = append(diags, Diagnostic{Line: lineNum, Text: line, Message: perr.Error()})
				case rec != nil:
					records = append(records, *rec)
				}
				// rec == nil: name emptied out during cleanup, not
				// worth reporting.
			}
		}

		if err != nil {
			if err != io.EOF {
				diags = append(diags, Diagnostic{Line: lineNum, Message: err.Error()})
			}
			break
		}
	}

	return records, diags
}

// readLine returns the next line without its terminator. A line longer
// than the reader's buffer is consumed to its end and reported via
// tooLong, so one oversized line never swallows the lines after it.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	chunk, isPrefix, err := br.ReadLine()
	if !isPrefix {
		return string(chunk), false, err
	}
	for isPrefix && err == nil {
		_, isPrefix, err = br.ReadLine()
	}
	return "", true, err
}

// parseLine applies the matcher cascade to a single trimmed line. It
// returns (nil, nil) when the extracted name cleans up to nothing.
func parseLine(line string) (*Record, error) {
	var match lineMatch
	for _, m := range matchers {
		got, ok, err := m(line)
		if err != nil {
			return nil, err
		}
		if ok {
			match = got
			break
		}
	}

	name := cleanName(match.name)
	if name == "" {
		return nil, nil
	}

	return &Record{
		Quantity: match.quantity,
		Name:     name,
		Price:    parsePrice(match.priceRaw),
	}, nil
}

// parsePrice normalizes a raw price token to a float. Commas are accepted
// as decimal separators ("5,50" and "5.50" both read as 5.5). A missing or
// unparseable token resolves to 0.0 rather than failing the line.
func parsePrice(raw string) float64 {
	if raw == "" {
		return 0
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0
	}
	return price
}

// cleanName trims the extracted name and strips at most one trailing
// period, the way the hand-kept file tends to end its entries.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, ".") {
		name = strings.TrimSpace(name[:len(name)-1])
	}
	return name
}
