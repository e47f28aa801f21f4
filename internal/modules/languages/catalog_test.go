package languages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"en", "de", "fr", "es", "pt", "ja"}, c.EnabledCodes())
	assert.False(t, c.IsEnabled("cn"))
	assert.True(t, c.IsEnabled("EN"))
	assert.Equal(t, "German", c.Label("de"))
	assert.Equal(t, "XX", c.Label("xx"))
}

func TestRestrict(t *testing.T) {
	c := Default().Restrict([]string{"en", "cn", "ja"})
	assert.Equal(t, []string{"en", "ja"}, c.EnabledCodes())
	assert.Equal(t, Default().EnabledCodes(), Default().Restrict(nil).EnabledCodes())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
languages:
  - code: DE
    label: German
    enabled: true
    display_order: 2
  - code: en
    label: English
    enabled: true
    display_order: 1
  - code: it
    label: Italian
    enabled: false
    display_order: 3
`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "de"}, c.EnabledCodes())
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("languages:\n  - code: en\n  - code: EN\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("languages:\n  - label: nothing\n"))
	assert.Error(t, err)
}
