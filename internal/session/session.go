package session

import "time"

// Language is one of the five supported narration languages.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageSpanish Language = "Spanish"
	LanguageFrench  Language = "French"
	LanguageGerman  Language = "German"
	LanguageHindi   Language = "Hindi"
)

// Languages is the fixed cycling order used by the "change language" command.
var Languages = []Language{
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
	LanguageHindi,
}

// VoiceGender selects the voice variant. Male only materially differs for
// English; other languages fall back to their single catalog voice.
type VoiceGender string

const (
	VoiceFemale VoiceGender = "Female"
	VoiceMale   VoiceGender = "Male"
)

// Tone is the narration mode applied before speaking. Neutral skips
// enhancement entirely.
type Tone string

const (
	ToneNeutral     Tone = "neutral"
	ToneExplanatory Tone = "explanatory"
	ToneSummary     Tone = "summary"
)

// Session holds all state for one interactive narration session. It is
// mutated only by the pipeline controller and the command dispatcher, one
// logical writer per interaction cycle.
type Session struct {
	ID           string      `json:"id"`
	DocumentName string      `json:"document_name"`
	RawText      string      `json:"raw_text"`
	EnhancedText string      `json:"enhanced_text"`
	Language     Language    `json:"language"`
	VoiceGender  VoiceGender `json:"voice_gender"`
	Tone         Tone        `json:"tone"`
	ShouldRead   bool        `json:"should_read"`
	IsListening  bool        `json:"is_listening"`
	LastCommand  string      `json:"last_command"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// New returns a session with defaults: English, female voice, neutral tone,
// no text loaded.
func New(id string) *Session {
	return &Session{
		ID:          id,
		Language:    LanguageEnglish,
		VoiceGender: VoiceFemale,
		Tone:        ToneNeutral,
		UpdatedAt:   time.Now(),
	}
}

// NextLanguage advances to the next entry in the fixed language order,
// wrapping around after the last one.
func (s *Session) NextLanguage() Language {
	idx := 0
	for i, lang := range Languages {
		if lang == s.Language {
			idx = i
			break
		}
	}
	s.Language = Languages[(idx+1)%len(Languages)]
	return s.Language
}

// HasText reports whether an upload has succeeded for this session.
func (s *Session) HasText() bool {
	return s.RawText != ""
}

// ValidLanguage reports whether lang is a member of the supported set.
func ValidLanguage(lang Language) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ValidTone reports whether tone is one of the three narration modes.
func ValidTone(tone Tone) bool {
	return tone == ToneNeutral || tone == ToneExplanatory || tone == ToneSummary
}

// ValidVoiceGender reports whether g is a supported voice variant.
func ValidVoiceGender(g VoiceGender) bool {
	return g == VoiceFemale || g == VoiceMale
}
