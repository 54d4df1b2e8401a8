package pipeline

import "github.com/nguyentantai21042004/lingua-flow/internal/language"

// State is everything a user sees in one session. Operations never mutate a
// State in place; they return the next value.
type State struct {
	InputText        string `json:"inputText"`
	OutputText       string `json:"outputText"`
	DetectedLanguage string `json:"detectedLanguage"`
	// DetectionStale is set when InputText changed but detection failed, so
	// DetectedLanguage belongs to an earlier text.
	DetectionStale bool   `json:"detectionStale"`
	TargetLanguage string `json:"targetLanguage"`
	LastError      string `json:"lastError"`
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{TargetLanguage: language.Default}
}

// HasDetection reports whether a usable detection result is present.
func (s State) HasDetection() bool {
	return s.DetectedLanguage != "" &&
		s.DetectedLanguage != language.NotDetected &&
		!s.DetectionStale
}
