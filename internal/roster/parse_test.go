package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseAndExtractDropsBlankNames(t *testing.T) {
	raw := []byte("Nome;Turma\nJoão Silva;5A\n;5A\nMaria;5A\n")

	table, err := Parse(raw, EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, ";", table.Delimiter)
	assert.Equal(t, []string{"Nome", "Turma"}, table.Columns)

	candidates, err := Extract(table, "Nome")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "João Silva", candidates[0].Name)
	assert.Equal(t, "Maria", candidates[1].Name)
}

func TestParseSkipsEmptyLinesAndStripsBOM(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFname,grade\n\nAmy,5\n\nBob,5\n")

	table, err := Parse(raw, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "grade"}, table.Columns)
	assert.Len(t, table.Rows, 2)
}

func TestParseTruncatesLongHeaders(t *testing.T) {
	long := "  abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijXYZ  "
	table, err := Parse([]byte(long+"\nAmy\n"), EncodingUTF8)
	require.NoError(t, err)
	assert.Len(t, []rune(table.Columns[0]), MaxColumnLength)
}

func TestParseReDecodesLatin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("nome\nJoão Conceição\n"))
	require.NoError(t, err)

	table, err := Parse(encoded, EncodingISO88591)
	require.NoError(t, err)
	candidates, err := Extract(table, "")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "João Conceição", candidates[0].Name)
}

func TestParseTabDelimited(t *testing.T) {
	table, err := Parse([]byte("id\tname\n1\tAmy\n2\tBob\n"), EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "\t", table.Delimiter)

	candidates, err := Extract(table, "name")
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Name: "Amy"}, {Name: "Bob"}}, candidates)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("a\n"), "ebcdic")
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)

	_, err = Parse([]byte("\n\n"), EncodingUTF8)
	assert.ErrorIs(t, err, ErrEmptyFile)

	table, err := Parse([]byte("nome\nAmy\n"), EncodingUTF8)
	require.NoError(t, err)
	_, err = Extract(table, "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
