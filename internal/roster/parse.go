package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported character encodings for roster files.
const (
	EncodingUTF8        = "utf-8"
	EncodingISO88591    = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
	EncodingUTF16       = "utf-16"
)

// MaxColumnLength bounds header labels.
const MaxColumnLength = 50

var (
	// ErrUnsupportedEncoding is returned for encodings outside the supported set.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	// ErrEmptyFile is returned when the file contains no header row.
	ErrEmptyFile = errors.New("file has no rows")
	// ErrUnknownColumn is returned when the name column is not in the header.
	ErrUnknownColumn = errors.New("unknown name column")
)

// Table is a parsed delimited file: a header plus data rows.
type Table struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Delimiter string     `json:"delimiter"`
	Encoding  string     `json:"encoding"`
}

// Candidate is a student name extracted from a table row.
type Candidate struct {
	Name string `json:"name"`
}

func decoderFor(name string) (*encoding.Decoder, string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8BOM.NewDecoder(), EncodingUTF8, nil
	case EncodingISO88591, "latin1":
		return charmap.ISO8859_1.NewDecoder(), EncodingISO88591, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252.NewDecoder(), EncodingWindows1252, nil
	case EncodingUTF16, "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), EncodingUTF16, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
}

// Parse decodes raw file bytes with the declared encoding and splits them into a table.
// Callers re-parse from the original bytes when switching encodings.
func Parse(raw []byte, enc string) (*Table, error) {
	dec, canonical, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	text, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", canonical, err)
	}

	delim := detectDelimiter(text)
	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := &Table{Delimiter: string(delim), Encoding: canonical}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blankRecord(record) {
			continue
		}
		if table.Columns == nil {
			table.Columns = headerColumns(record)
			continue
		}
		table.Rows = append(table.Rows, record)
	}

	if table.Columns == nil {
		return nil, ErrEmptyFile
	}
	return table, nil
}

// Extract returns a candidate for every row whose name cell is non-blank.
// An empty column name picks the first header that looks like a name column.
func Extract(table *Table, column string) ([]Candidate, error) {
	if table == nil {
		return nil, ErrEmptyFile
	}
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	candidates := make([]Candidate, 0, len(table.Rows))
	for _, row := range table.Rows {
		if idx >= len(row) {
			continue
		}
		name := NormalizeName(row[idx])
		if name == "" {
			continue
		}
		candidates = append(candidates, Candidate{Name: name})
	}
	return candidates, nil
}

// ColumnIndex resolves a header label, or guesses the name column when label is empty.
func (t *Table) ColumnIndex(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		for i, col := range t.Columns {
			switch strings.ToLower(col) {
			case "nome", "name", "aluno", "nome completo", "student":
				return i
			}
		}
		if len(t.Columns) > 0 {
			return 0
		}
		return -1
	}
	for i, col := range t.Columns {
		if strings.EqualFold(col, label) {
			return i
		}
	}
	return -1
}

func detectDelimiter(text []byte) rune {
	line := text
	for len(line) > 0 {
		end := bytes.IndexByte(line, '\n')
		current := line
		if end >= 0 {
			current = line[:end]
		}
		if len(bytes.TrimSpace(current)) > 0 {
			line = current
			break
		}
		if end < 0 {
			break
		}
		line = line[end+1:]
	}

	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func headerColumns(record []string) []string {
	columns := make([]string, len(record))
	for i, cell := range record {
		cell = strings.TrimSpace(cell)
		if utf8.RuneCountInString(cell) > MaxColumnLength {
			cell = string([]rune(cell)[:MaxColumnLength])
		}
		columns[i] = cell
	}
	return columns
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
