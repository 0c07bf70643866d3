package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedVisaLinks(t *testing.T) {
	links, err := EmbeddedVisaLinks()
	require.NoError(t, err)

	gb, ok := links.Lookup("GB")
	require.True(t, ok)
	assert.Equal(t, "https://www.gov.uk/eta", gb.ETAURL)

	// Kenya is linked but has no catalog rule.
	ke, ok := links.Lookup("KE")
	require.True(t, ok)
	assert.Equal(t, "Kenya", ke.Name)
}

func TestLoadVisaLinks(t *testing.T) {
	t.Run("normalises codes", func(t *testing.T) {
		links, err := LoadVisaLinks([]byte(`{" jp ": {"name": "Japan", "visaUrl": "https://www.mofa.go.jp/"}}`))
		require.NoError(t, err)
		assert.Equal(t, 1, links.Len())
		_, ok := links.Lookup("JP")
		assert.True(t, ok)
	})

	t.Run("rejects unknown country", func(t *testing.T) {
		_, err := LoadVisaLinks([]byte(`{"ZZ": {"name": "Nowhere"}}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Problems[0], `"ZZ"`)
	})

	t.Run("rejects non-http url", func(t *testing.T) {
		_, err := LoadVisaLinks([]byte(`{"JP": {"name": "Japan", "etaUrl": "ftp://example.com"}}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Problems[0], "JP etaUrl")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := LoadVisaLinks([]byte(`[`))
		require.Error(t, err)
	})
}

func TestLoadVisaLinksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MX": {"name": "Mexico", "visaUrl": "https://www.inm.gob.mx/"}}`), 0o600))

	links, err := LoadVisaLinksFile(path)
	require.NoError(t, err)
	mx, ok := links.Lookup("MX")
	require.True(t, ok)
	assert.Equal(t, "https://www.inm.gob.mx/", mx.VisaURL)

	_, err = LoadVisaLinksFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestNilVisaLinks(t *testing.T) {
	var links *VisaLinks
	_, ok := links.Lookup("GB")
	assert.False(t, ok)
	assert.Equal(t, 0, links.Len())
}
