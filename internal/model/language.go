package model

// Language is one entry of the fixed target-language catalog. Adding a
// language means adding a tuple here; no other code path depends on the
// set's size.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// DefaultLanguageCode is the target language a fresh session starts with.
const DefaultLanguageCode = "english"

// Languages is the supported target-language catalog.
var Languages = []Language{
	{Code: "english", Name: "English", Flag: "🇺🇸"},
	{Code: "spanish", Name: "Spanish", Flag: "🇪🇸"},
	{Code: "french", Name: "French", Flag: "🇫🇷"},
	{Code: "german", Name: "German", Flag: "🇩🇪"},
	{Code: "italian", Name: "Italian", Flag: "🇮🇹"},
	{Code: "portuguese", Name: "Portuguese", Flag: "🇵🇹"},
	{Code: "russian", Name: "Russian", Flag: "🇷🇺"},
	{Code: "japanese", Name: "Japanese", Flag: "🇯🇵"},
	{Code: "chinese", Name: "Chinese", Flag: "🇨🇳"},
	{Code: "korean", Name: "Korean", Flag: "🇰🇷"},
	{Code: "hindi", Name: "Hindi", Flag: "🇮🇳"},
	{Code: "arabic", Name: "Arabic", Flag: "🇸🇦"},
}

// LanguageByCode looks up a catalog entry; ok is false for unknown codes.
func LanguageByCode(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageName returns the display name for a code, or "Unknown" when the
// code is not in the catalog.
func LanguageName(code string) string {
	if l, ok := LanguageByCode(code); ok {
		return l.Name
	}
	return "Unknown"
}
