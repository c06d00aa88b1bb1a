package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Recognizer RecognizerConfig `yaml:"recognizer"`
	OCR        OCRConfig        `yaml:"ocr"`
	Session    SessionConfig    `yaml:"session"`
	Speech     SpeechConfig     `yaml:"speech"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
	StaticDir   string `yaml:"static_dir"`
	CORSOrigins string `yaml:"cors_origins"`
}

type PathsConfig struct {
	Inbox   string `yaml:"inbox"`
	Exports string `yaml:"exports"`
	Temp    string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type RecognizerConfig struct {
	WhisperBinary  string `yaml:"whisper_binary"`
	WhisperModel   string `yaml:"whisper_model"`
	CaptureBinary  string `yaml:"capture_binary"`
	CaptureFormat  string `yaml:"capture_format"`
	CaptureDevice  string `yaml:"capture_device"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PhraseSeconds  int    `yaml:"phrase_seconds"`
	Threads        int    `yaml:"threads"`
}

type OCRConfig struct {
	Languages []string `yaml:"languages"`
}

type SessionConfig struct {
	TTLMinutes   int `yaml:"ttl_minutes"`
	SweepMinutes int `yaml:"sweep_minutes"`
}

type SpeechConfig struct {
	Topic      string `yaml:"topic"`
	BufferSize int    `yaml:"buffer_size"`
}

func (c *Config) Validate() error {
	if c.Recognizer.WhisperBinary == "" {
		return fmt.Errorf("recognizer.whisper_binary is required")
	}
	if c.Recognizer.WhisperModel == "" {
		return fmt.Errorf("recognizer.whisper_model is required")
	}
	if c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required")
	}
	if c.Paths.Exports == "" {
		return fmt.Errorf("paths.exports is required")
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BodyLimitMB == 0 {
		c.Server.BodyLimitMB = 20
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if len(c.Gemini.APIKeys) == 0 {
		if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
			c.Gemini.APIKeys = []string{key}
		}
	}
	if c.Recognizer.CaptureBinary == "" {
		c.Recognizer.CaptureBinary = "ffmpeg"
	}
	if c.Recognizer.CaptureFormat == "" {
		c.Recognizer.CaptureFormat = "alsa"
	}
	if c.Recognizer.CaptureDevice == "" {
		c.Recognizer.CaptureDevice = "default"
	}
	if c.Recognizer.Language == "" {
		c.Recognizer.Language = "en"
	}
	if c.Recognizer.TimeoutSeconds == 0 {
		c.Recognizer.TimeoutSeconds = 5
	}
	if c.Recognizer.PhraseSeconds == 0 {
		c.Recognizer.PhraseSeconds = 5
	}
	if c.Recognizer.Threads == 0 {
		c.Recognizer.Threads = 4
	}
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = []string{"eng"}
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 12 * 60
	}
	if c.Session.SweepMinutes == 0 {
		c.Session.SweepMinutes = 10
	}
	if c.Speech.Topic == "" {
		c.Speech.Topic = "speech.commands"
	}
	if c.Speech.BufferSize == 0 {
		c.Speech.BufferSize = 16
	}

	return nil
}
