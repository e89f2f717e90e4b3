package config

import "strings"

// Default wrap limits in display-width units. A wide character costs two
// units, so the CJK limit fits 25 characters.
const (
	LatinWrapLimit = 42
	CJKWrapLimit   = 50
)

// CJK language codes (first 3 chars of the code).
var cjkCodes = map[string]bool{
	"zho": true,
	"jpn": true,
	"kor": true,
	"chi": true,
	"zh":  true,
	"ja":  true,
	"ko":  true,
}

// IsCJK returns true if the language code represents Chinese, Japanese, or Korean.
func IsCJK(langCode string) bool {
	langCode = strings.ToLower(langCode)
	if i := strings.IndexAny(langCode, "-_"); i >= 0 {
		langCode = langCode[:i]
	}
	if len(langCode) > 3 {
		langCode = langCode[:3]
	}
	return cjkCodes[langCode]
}

// LimitForLang returns the default wrap limit for the given language.
func LimitForLang(langCode string) int {
	if IsCJK(langCode) {
		return CJKWrapLimit
	}
	return LatinWrapLimit
}
