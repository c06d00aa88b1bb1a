package command

import (
	"fmt"
	"strings"

	"echoverse/internal/session"
)

// Action is the dispatcher's verdict on a transcript.
type Action string

const (
	ActionNone           Action = "none"
	ActionStartRead      Action = "start-read"
	ActionStopRead       Action = "stop-read"
	ActionResumeRead     Action = "resume-read"
	ActionNextPage       Action = "next-page"
	ActionChangeLanguage Action = "change-language"
	ActionUnrecognized   Action = "unrecognized"
)

// Outcome describes what a dispatched command did: the matched action, a
// user-visible report, and whether the UI must fully re-render.
type Outcome struct {
	Action   Action
	Report   string
	Rerender bool
}

// rule pairs a predicate with its effect. Rules are evaluated in order,
// first match wins, so precedence lives in the table rather than in code.
type rule struct {
	match func(transcript string) bool
	apply func(s *session.Session) Outcome
}

func containsAny(patterns ...string) func(string) bool {
	return func(transcript string) bool {
		for _, p := range patterns {
			if strings.Contains(transcript, p) {
				return true
			}
		}
		return false
	}
}

func startReading(action Action, report string) func(*session.Session) Outcome {
	return func(s *session.Session) Outcome {
		if !s.HasText() {
			return Outcome{
				Action: action,
				Report: "No text available to read. Please upload a document first.",
			}
		}
		s.ShouldRead = true
		return Outcome{Action: action, Report: report}
	}
}

// The precedence order matters: "stop" must resolve before "continue" so a
// transcript like "please stop and then continue" stops narration.
var rules = []rule{
	{
		match: containsAny("start reading", "read"),
		apply: startReading(ActionStartRead, "Started reading the document"),
	},
	{
		match: containsAny("stop"),
		apply: func(s *session.Session) Outcome {
			s.ShouldRead = false
			return Outcome{Action: ActionStopRead, Report: "Stopped reading"}
		},
	},
	{
		// No reading position is tracked: resume restarts from the beginning.
		match: containsAny("continue", "resume"),
		apply: startReading(ActionResumeRead, "Resumed reading"),
	},
	{
		match: containsAny("next page", "next"),
		apply: func(s *session.Session) Outcome {
			return Outcome{Action: ActionNextPage, Report: "Page navigation is not supported"}
		},
	},
	{
		match: containsAny("change language"),
		apply: func(s *session.Session) Outcome {
			lang := s.NextLanguage()
			return Outcome{
				Action:   ActionChangeLanguage,
				Report:   fmt.Sprintf("Language changed to %s", lang),
				Rerender: true,
			}
		},
	},
}

// Dispatch interprets a recognized transcript against the session, mutating
// it per the matched rule. An empty transcript changes nothing.
func Dispatch(transcript string, s *session.Session) Outcome {
	transcript = strings.ToLower(strings.TrimSpace(transcript))
	if transcript == "" {
		return Outcome{Action: ActionNone}
	}

	for _, r := range rules {
		if r.match(transcript) {
			return r.apply(s)
		}
	}

	return Outcome{
		Action: ActionUnrecognized,
		Report: fmt.Sprintf("Command not recognized: %q", transcript),
	}
}
