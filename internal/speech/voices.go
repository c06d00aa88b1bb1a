package speech

import "echoverse/internal/session"

type voiceEntry struct {
	code   string
	female string
	male   string
}

// The engine voice names mirror the browser synthesis voices per language.
// Only English ships a distinct male variant; the other languages have a
// single catalog voice regardless of the requested gender.
var voiceCatalog = map[session.Language]voiceEntry{
	session.LanguageEnglish: {code: "en", female: "Google UK English Female", male: "Google UK English Male"},
	session.LanguageSpanish: {code: "es", female: "Google español"},
	session.LanguageFrench:  {code: "fr", female: "Google français"},
	session.LanguageGerman:  {code: "de", female: "Google Deutsch"},
	session.LanguageHindi:   {code: "hi", female: "Google हिन्दी"},
}

// VoiceFor resolves the language code and voice hint for a session's
// language and voice gender.
func VoiceFor(lang session.Language, gender session.VoiceGender) (code, name string) {
	entry, ok := voiceCatalog[lang]
	if !ok {
		entry = voiceCatalog[session.LanguageEnglish]
	}
	name = entry.female
	if gender == session.VoiceMale && entry.male != "" {
		name = entry.male
	}
	return entry.code, name
}
