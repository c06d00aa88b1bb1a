package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	sess := New("abc")

	assert.Equal(t, "abc", sess.ID)
	assert.Equal(t, LanguageEnglish, sess.Language)
	assert.Equal(t, VoiceFemale, sess.VoiceGender)
	assert.Equal(t, ToneNeutral, sess.Tone)
	assert.Empty(t, sess.RawText)
	assert.Empty(t, sess.EnhancedText)
	assert.False(t, sess.ShouldRead)
	assert.False(t, sess.IsListening)
}

func TestNextLanguageOrder(t *testing.T) {
	sess := New("abc")

	want := []Language{
		LanguageSpanish,
		LanguageFrench,
		LanguageGerman,
		LanguageHindi,
		LanguageEnglish,
	}

	for _, lang := range want {
		assert.Equal(t, lang, sess.NextLanguage())
	}
}

func TestNextLanguageCyclesBackFromAnyStart(t *testing.T) {
	// Five advances from any starting language return to the start.
	for _, start := range Languages {
		sess := New("abc")
		sess.Language = start
		for i := 0; i < len(Languages); i++ {
			sess.NextLanguage()
		}
		assert.Equal(t, start, sess.Language)
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidLanguage(LanguageHindi))
	assert.False(t, ValidLanguage(Language("Klingon")))
	assert.True(t, ValidTone(ToneSummary))
	assert.False(t, ValidTone(Tone("angry")))
	assert.True(t, ValidVoiceGender(VoiceMale))
	assert.False(t, ValidVoiceGender(VoiceGender("robot")))
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	_, found := store.Get("abc")
	assert.False(t, found)

	sess := store.GetOrCreate("abc")
	require.NotNil(t, sess)
	assert.Equal(t, LanguageEnglish, sess.Language)

	sess.RawText = "Hello world."
	store.Save(sess)

	got, found := store.Get("abc")
	require.True(t, found)
	assert.Equal(t, "Hello world.", got.RawText)

	store.Delete("abc")
	_, found = store.Get("abc")
	assert.False(t, found)
}

func TestStoreGetOrCreateIsStable(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	first := store.GetOrCreate("abc")
	first.LastCommand = "stop"
	store.Save(first)

	second := store.GetOrCreate("abc")
	assert.Equal(t, "stop", second.LastCommand)
}
