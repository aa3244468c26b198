package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Translate(t *testing.T) {
	c, err := NewCatalog("en")
	require.NoError(t, err)
	require.NoError(t, c.Add("de", map[string]string{"Hello": "Hallo"}))
	require.NoError(t, c.Add("en", map[string]string{"Hello": "Hello there"}))

	assert.Equal(t, "Hallo", c.Translate("de", "Hello"))
	assert.Equal(t, "Hallo", c.Translate("de-AT", "Hello"))
	assert.Equal(t, "Hello there", c.Translate("en", "Hello"))
	assert.Equal(t, "Hello there", c.Translate("", "Hello"))
	assert.Equal(t, "Hello there", c.Translate("not a locale!", "Hello"))
}

func TestCatalog_UnknownMessagePassesThrough(t *testing.T) {
	c, err := NewCatalog("en")
	require.NoError(t, err)

	assert.Equal(t, "100% done", c.Translate("de", "100% done"))
	assert.Equal(t, "%d items", c.Translate("de", "%d items"))
}

func TestCatalog_PercentIsLiteral(t *testing.T) {
	c, err := NewCatalog("en")
	require.NoError(t, err)
	require.NoError(t, c.Add("de", map[string]string{
		"Done: 100%": "Fertig: 100 %",
		"50% off":    "50% Rabatt",
	}))
	require.NoError(t, c.Add("en", map[string]string{"Saved %s": "Saved 100%"}))

	assert.Equal(t, "Fertig: 100 %", c.Translate("de", "Done: 100%"))
	assert.Equal(t, "50% Rabatt", c.Translate("de", "50% off"))
	assert.Equal(t, "50% off", c.Translate("en", "50% off"))
	assert.Equal(t, "Saved 100%", c.Translate("de", "Saved %s"))
}

func TestCatalog_InvalidLocale(t *testing.T) {
	_, err := NewCatalog("!!")
	assert.Error(t, err)

	c, err := NewCatalog("en")
	require.NoError(t, err)
	assert.Error(t, c.Add("!!", map[string]string{"a": "b"}))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.yaml"), []byte("\"Sign out\": \"Se déconnecter\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	c, err := LoadDir(dir, "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "fr"}, c.Locales())
	assert.Equal(t, "Se déconnecter", c.Translate("fr-CA", "Sign out"))
	assert.Equal(t, "Sign out", c.Translate("en", "Sign out"))
}

func TestLoadDir_Missing(t *testing.T) {
	c, err := LoadDir(filepath.Join(t.TempDir(), "nope"), "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, c.Locales())
}

func TestLoadDir_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.yaml"), []byte("- not\n- a map\n"), 0o644))

	_, err := LoadDir(dir, "en")
	assert.Error(t, err)
}
