package weather

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// cityAliases maps Japanese spellings (kanji, hiragana, katakana) of the major
// cities to the names the weather API accepts. Read-only after init.
var cityAliases = buildCityAliases(map[string][]string{
	"Tokyo":     {"東京", "とうきょう", "トウキョウ"},
	"Osaka":     {"大阪", "おおさか", "オオサカ"},
	"Nagoya":    {"名古屋", "なごや", "ナゴヤ"},
	"Fukuoka":   {"福岡", "ふくおか", "フクオカ"},
	"Sapporo":   {"札幌", "さっぽろ", "サッポロ"},
	"Sendai":    {"仙台", "せんだい", "センダイ"},
	"Hiroshima": {"広島", "ひろしま", "ヒロシマ"},
	"Kyoto":     {"京都", "きょうと", "キョウト"},
	"Kobe":      {"神戸", "こうべ", "コウベ"},
})

func buildCityAliases(byCanonical map[string][]string) map[string]string {
	out := make(map[string]string)
	for canonical, spellings := range byCanonical {
		for _, s := range spellings {
			out[s] = canonical
		}
	}
	return out
}

// CityAliases returns a copy of the alias table.
func CityAliases() map[string]string {
	out := make(map[string]string, len(cityAliases))
	for k, v := range cityAliases {
		out[k] = v
	}
	return out
}

// fullWidthASCII folds full-width digits and Latin letters to their ASCII forms.
func fullWidthASCII() transform.Transformer {
	return runes.Map(func(r rune) rune {
		switch {
		case r >= 0xFF10 && r <= 0xFF19,
			r >= 0xFF21 && r <= 0xFF3A,
			r >= 0xFF41 && r <= 0xFF5A:
			return r - 0xFEE0
		}
		return r
	})
}

// NormalizeCityName canonicalizes a place name for the weather API. It never
// fails and is idempotent.
func NormalizeCityName(value string) string {
	value = strings.TrimSpace(value)

	if folded, _, err := transform.String(fullWidthASCII(), value); err == nil {
		value = folded
	}

	if canonical, ok := cityAliases[value]; ok {
		return canonical
	}
	return value
}
