package models

import "strings"

// Locale identifies one of the supported site languages
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocalePortuguese Locale = "pt"
	LocaleSpanish    Locale = "es"

	// DefaultLocale is used whenever a requested locale is not recognised
	DefaultLocale = LocaleEnglish
)

// LocaleInfo describes how content is produced for a locale
type LocaleInfo struct {
	Code     Locale `json:"code"`
	Language string `json:"language"`
	// Metric locales get milliliter measurements from the language model
	Metric bool `json:"metric"`
	// LegacyMeasures marks locales whose bundled records may carry a
	// locale-specific measure column predating the metric one
	LegacyMeasures bool `json:"legacyMeasures"`
}

var localeTable = map[Locale]LocaleInfo{
	LocaleEnglish:    {Code: LocaleEnglish, Language: "English"},
	LocalePortuguese: {Code: LocalePortuguese, Language: "Portuguese (Brazil)", Metric: true, LegacyMeasures: true},
	LocaleSpanish:    {Code: LocaleSpanish, Language: "Spanish", Metric: true},
}

var localeOrder = []Locale{LocaleEnglish, LocalePortuguese, LocaleSpanish}

// ParseLocale normalises a locale code such as "PT", "pt-BR" or "es_ES".
// Unrecognised values fall back to DefaultLocale.
func ParseLocale(raw string) Locale {
	code := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if _, ok := localeTable[Locale(code)]; ok {
		return Locale(code)
	}
	return DefaultLocale
}

// Info returns the table entry for the locale, falling back to DefaultLocale
func (l Locale) Info() LocaleInfo {
	if info, ok := localeTable[l]; ok {
		return info
	}
	return localeTable[DefaultLocale]
}

// Language returns the language name used in prompts
func (l Locale) Language() string {
	return l.Info().Language
}

// Metric reports whether the locale expects milliliter units
func (l Locale) Metric() bool {
	return l.Info().Metric
}

// Locales lists all supported locales in display order
func Locales() []LocaleInfo {
	infos := make([]LocaleInfo, 0, len(localeOrder))
	for _, code := range localeOrder {
		infos = append(infos, localeTable[code])
	}
	return infos
}

// Units selects how ingredient measures are displayed
type Units string

const (
	UnitsStandard Units = "standard"
	UnitsMetric   Units = "metric"
)

// ParseUnits normalises a units query value, defaulting to UnitsStandard
func ParseUnits(raw string) Units {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "metric", "ml":
		return UnitsMetric
	default:
		return UnitsStandard
	}
}
