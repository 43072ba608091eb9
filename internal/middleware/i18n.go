// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/i18n"
	"github.com/javajoker/provenance-backend/internal/utils"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(utils.ContextKeyLang, resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// zhTraditionalTags are tags served by the zh_TW catalog.
var zhTraditionalTags = map[string]bool{
	"zh":         true,
	"zh_hant":    true,
	"zh_hk":      true,
	"zh_hant_tw": true,
}

// resolveLanguage picks a loaded catalog language from the first
// Accept-Language entry, e.g. "zh-TW,zh;q=0.9,en;q=0.8".
func resolveLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLang
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	tag := strings.ToLower(strings.ReplaceAll(first, "-", "_"))
	if zhTraditionalTags[tag] {
		tag = "zh_tw"
	}

	supported := i18n.GetSupportedLanguages()
	for _, lang := range supported {
		if strings.EqualFold(lang, tag) {
			return lang
		}
	}
	// Fall back to the primary subtag, e.g. en_US -> en.
	primary := strings.SplitN(tag, "_", 2)[0]
	for _, lang := range supported {
		if strings.EqualFold(lang, primary) {
			return lang
		}
	}
	return i18n.DefaultLang
}
