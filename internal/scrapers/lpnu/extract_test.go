package lpnu

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFields(t *testing.T) {
	extractor := DefaultExtractor()

	table := []struct {
		name     string
		fragment string
		expected Fields
	}{
		{
			name:     "empty teacher",
			fragment: "Вища математика\n<br>\n<br>202&nbsp;Гол.&nbsp;ЛЕК",
			expected: Fields{
				Description: "Вища математика",
				Teacher:     "",
				Location:    "202&nbsp;Гол.",
				ClassType:   "ЛЕК",
			},
		},
		{
			name:     "rendered by goquery",
			fragment: "Вища математика<br/>Іванов І.І.<br/>202\u00a0Гол. н.к.\u00a0Лекція<br/>",
			expected: Fields{
				Description: "Вища математика",
				Teacher:     "Іванов І.І.",
				Location:    "202\u00a0Гол. н.к.",
				ClassType:   "Лекція",
			},
		},
		{
			name:     "no trailing break",
			fragment: "Програмування\n<br>Петренко П.П.\n<br>305&nbsp;V н.к.&nbsp;Лабораторна",
			expected: Fields{
				Description: "Програмування",
				Teacher:     "Петренко П.П.",
				Location:    "305&nbsp;V н.к.",
				ClassType:   "Лабораторна",
			},
		},
		{
			name:     "markup inside a field",
			fragment: "<b>Вища математика</b><br>Іванов І.І.<br>202&nbsp;Лекція\n",
			expected: Fields{
				Description: "<b>Вища математика</b>",
				Teacher:     "Іванов І.І.",
				Location:    "202",
				ClassType:   "Лекція",
			},
		},
		{
			name:     "no teacher and no location",
			fragment: "Фізичне виховання<br><br>&nbsp;Фізичне виховання<br>",
			expected: Fields{
				Description: "Фізичне виховання",
				Location:    "",
				ClassType:   "Фізичне виховання",
			},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			fields, err := extractor.Extract(row.fragment)
			require.NoError(t, err)
			require.Equal(t, row.expected, fields)
		})
	}
}

func TestExtractMismatch(t *testing.T) {
	table := []struct {
		name     string
		fragment string
	}{
		{name: "single line", fragment: "Заняття перенесено"},
		{name: "extra line", fragment: "Вища математика<br>Іванов І.І.<br>Петров П.П.<br>202&nbsp;Лекція"},
		{name: "content after type", fragment: "Вища математика<br>Іванов І.І.<br>202&nbsp;Лекція<br><a href=\"x\">онлайн</a>"},
		{name: "extra line in teacher", fragment: "Вища математика<br>Іванов І.І.<br/>Петров П.П.<br>202&nbsp;Гол.&nbsp;Лекція<br>"},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			_, err := DefaultExtractor().Extract(row.fragment)

			var mismatch *PatternMismatchError
			require.True(t, errors.As(err, &mismatch))
			require.Equal(t, row.fragment, mismatch.Fragment)
			require.Equal(t, slotDetailsPattern.String(), mismatch.Pattern)
		})
	}
}

func TestNewPatternExtractorRequiresGroups(t *testing.T) {
	_, err := NewPatternExtractor(regexp.MustCompile(`(?P<desc>.+)<br>(?P<teacher>.*)`))
	require.Error(t, err)
}

func TestSplitLocation(t *testing.T) {
	loc, ok := SplitLocation("202 Гол. н.к.")
	require.True(t, ok)
	require.Equal(t, Location{Auditory: "202", Campus: "Гол."}, loc)

	loc, ok = SplitLocation("305 V н.к.")
	require.True(t, ok)
	require.Equal(t, Location{Auditory: "305", Campus: "V"}, loc)

	_, ok = SplitLocation("")
	require.False(t, ok)
}
