// Package language holds the fixed set of target languages offered to users.
package language

// Code is an ISO-639-1 language code.
type Code = string

// NotDetected marks a detection that completed without recognizing a language.
const NotDetected Code = "und"

// Default is the target language of a fresh session.
const Default Code = "en"

type Language struct {
	Code  Code   `json:"code"`
	Label string `json:"label"`
}

var all = []Language{
	{Code: "en", Label: "English"},
	{Code: "pt", Label: "Portuguese"},
	{Code: "es", Label: "Spanish"},
	{Code: "ru", Label: "Russian"},
	{Code: "tr", Label: "Turkish"},
	{Code: "fr", Label: "French"},
}

// All returns a copy of the enumerated languages in display order.
func All() []Language {
	out := make([]Language, len(all))
	copy(out, all)
	return out
}

// IsSupported reports whether code is one of the enumerated languages.
func IsSupported(code Code) bool {
	_, ok := Lookup(code)
	return ok
}

// Lookup returns the language with the given code.
func Lookup(code Code) (Language, bool) {
	for _, l := range all {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Label returns the display label for code, or code itself when it is not
// one of the enumerated languages (detections may return any code).
func Label(code Code) string {
	if l, ok := Lookup(code); ok {
		return l.Label
	}
	if code == NotDetected {
		return "Not detected"
	}
	return code
}

// Next returns the language after code in display order, wrapping around.
func Next(code Code) Code {
	for i, l := range all {
		if l.Code == code {
			return all[(i+1)%len(all)].Code
		}
	}
	return Default
}
