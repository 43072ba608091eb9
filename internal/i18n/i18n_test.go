package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "Unauthorized: No token provided", T("en", KeyAuthRequired))
	assert.Equal(t, "Verification failed: boom", T("en", KeyProductVerificationFailed, "boom"))
	assert.Equal(t, "檔案過大", T("zh_TW", KeyUploadTooLarge))
	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	i := New(DefaultLang)
	require.NoError(t, i.LoadTranslations(embeddedLocales, "locales"))

	for key := range i.translations["en"] {
		_, ok := i.translations["zh_TW"][key]
		assert.True(t, ok, "zh_TW is missing %s", key)
	}
}

func TestFallbacks(t *testing.T) {
	fsys := fstest.MapFS{
		"loc/en.json": {Data: []byte(`{"greeting": "hello %s", "only_en": "english"}`)},
		"loc/fr.json": {Data: []byte(`{"greeting": "bonjour %s"}`)},
		"loc/README":  {Data: []byte("ignored")},
	}
	i := New("en")
	require.NoError(t, i.LoadTranslations(fsys, "loc"))

	assert.Equal(t, "bonjour bob", i.T("fr", "greeting", "bob"))
	assert.Equal(t, "english", i.T("fr", "only_en"))
	assert.Equal(t, "english", i.T("de", "only_en"))
	assert.Equal(t, "missing.key", i.T("en", "missing.key"))
}

func TestLoadTranslationsRejectsBadJSON(t *testing.T) {
	fsys := fstest.MapFS{"loc/en.json": {Data: []byte(`{`)}}
	assert.Error(t, New("en").LoadTranslations(fsys, "loc"))
}
