package lingopack

import "strings"

// LanguageNames maps catalog codes to the labels shown to hosts. The catalog
// is closed; the availability cache itself never validates against it.
var LanguageNames = map[LanguageCode]string{
	CodeAuto: "Auto-detect",
	"en":     "English",
	"ar":     "Arabic (العربية)",
	"az":     "Azerbaijani (Azərbaycan)",
	"ca":     "Catalan (Català)",
	"zh":     "Chinese (中文)",
	"cs":     "Czech (Čeština)",
	"da":     "Danish (Dansk)",
	"nl":     "Dutch (Nederlands)",
	"eo":     "Esperanto",
	"fi":     "Finnish (Suomi)",
	"fr":     "French (Français)",
	"de":     "German (Deutsch)",
	"el":     "Greek (Ελληνικά)",
	"he":     "Hebrew (עברית)",
	"hi":     "Hindi (हिन्दी)",
	"hu":     "Hungarian (Magyar)",
	"id":     "Indonesian (Bahasa Indonesia)",
	"ga":     "Irish (Gaeilge)",
	"it":     "Italian (Italiano)",
	"ja":     "Japanese (日本語)",
	"ko":     "Korean (한국어)",
	"lv":     "Latvian (Latviešu)",
	"lt":     "Lithuanian (Lietuvių)",
	"ms":     "Malay (Bahasa Melayu)",
	"no":     "Norwegian (Norsk)",
	"fa":     "Persian (فارسی)",
	"pl":     "Polish (Polski)",
	"pt":     "Portuguese (Português)",
	"ro":     "Romanian (Română)",
	"ru":     "Russian (Русский)",
	"sk":     "Slovak (Slovenčina)",
	"sl":     "Slovenian (Slovenščina)",
	"es":     "Spanish (Español)",
	"sv":     "Swedish (Svenska)",
	"th":     "Thai (ไทย)",
	"tr":     "Turkish (Türkçe)",
	"uk":     "Ukrainian (Українська)",
	"vi":     "Vietnamese (Tiếng Việt)",
}

// languageOrder is the fixed catalog order used for host-facing lists:
// auto, English, then the remaining languages by English name.
var languageOrder = []LanguageCode{
	CodeAuto, "en", "ar", "az", "ca", "zh", "cs", "da", "nl", "eo", "fi",
	"fr", "de", "el", "he", "hi", "hu", "id", "ga", "it", "ja", "ko", "lv",
	"lt", "ms", "no", "fa", "pl", "pt", "ro", "ru", "sk", "sl", "es", "sv",
	"th", "tr", "uk", "vi",
}

// RTLLanguages contains catalog codes that use right-to-left text direction.
var RTLLanguages = map[LanguageCode]bool{
	"ar": true,
	"he": true,
	"fa": true,
}

// DisplayName returns the host-facing display string for a code, in the
// "<code> - <label>" form. Unknown codes are returned verbatim.
func DisplayName(code LanguageCode) string {
	name, ok := LanguageNames[code]
	if !ok {
		return string(code)
	}
	return string(code) + " - " + name
}

// ParseDisplay extracts the language code from a display string. The display
// form is "<code> - <label>"; everything before the first " - " is the code,
// or the whole string if the separator is absent.
func ParseDisplay(display string) LanguageCode {
	if code, _, ok := strings.Cut(display, " - "); ok {
		return LanguageCode(code)
	}
	return LanguageCode(display)
}

// LanguageList returns the display strings for the whole catalog in fixed
// order, suitable for a host dropdown.
func LanguageList() []string {
	list := make([]string, 0, len(languageOrder))
	for _, code := range languageOrder {
		list = append(list, DisplayName(code))
	}
	return list
}

// IsKnown reports whether the code belongs to the catalog. Membership only
// affects display naming, never cache correctness.
func IsKnown(code LanguageCode) bool {
	_, ok := LanguageNames[code]
	return ok
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code LanguageCode) string {
	if RTLLanguages[code] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(code LanguageCode) bool {
	return GetDirection(code) == "rtl"
}
