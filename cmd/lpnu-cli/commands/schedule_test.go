package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestGroups(t *testing.T) {
	known := []string{"КН-101", "КН-102", "ПЗ-11", "АР-11"}

	suggestions := suggestGroups("кн-10", known, 2)
	require.Len(t, suggestions, 2)
	require.ElementsMatch(t, []string{"КН-101", "КН-102"}, suggestions)

	require.Len(t, suggestGroups("КН-101", known[:1], 3), 1)
	require.Empty(t, suggestGroups("КН-101", nil, 3))
}

func TestLoadConfigDefaults(t *testing.T) {
	out, err := loadConfig(t.TempDir() + "/config.json5")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), out)
}
