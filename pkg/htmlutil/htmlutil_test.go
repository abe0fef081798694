package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div><h3>1</h3><span>Пн</span> <b>x</b></div>`))
	require.NoError(t, err)
	require.Equal(t, "1Пн x", GetText(doc))
}

func TestCleanText(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "202&nbsp;Гол.", expected: "202 Гол."},
		{input: "202 Гол.", expected: "202 Гол."},
		{input: "  Вища   математика\n\t", expected: "Вища математика"},
		{input: "&quot;Бази даних&quot;", expected: `"Бази даних"`},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, CleanText(row.input))
		require.Equal(t, row.expected, CleanText(CleanText(row.input)))
	}
}

func TestTrimIdempotent(t *testing.T) {
	for _, s := range []string{" a ", "a", "", "\n\tПн \n"} {
		once := Trim(s)
		require.Equal(t, once, Trim(once))
	}
}
