package model

import (
	"maps"
	"time"
)

// Session is the persisted record of one visitor's quiz progress.
type Session struct {
	Answers     map[string]string `json:"answers"`
	StartTime   string            `json:"startTime"`
	LastUpdated string            `json:"lastUpdated,omitempty"`
	CurrentStep int               `json:"currentStep"`
}

// NewSession is the one place the initial session shape is defined.
func NewSession(now time.Time) *Session {
	return &Session{
		Answers:     map[string]string{},
		StartTime:   Timestamp(now),
		CurrentStep: 1,
	}
}

// Timestamp formats t the way the page's script does (Date.toISOString).
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Payload is the submission built from the contact form and the session
// snapshot at submit time. It is never persisted.
type Payload struct {
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Availability  string            `json:"availability"`
	Privacy       bool              `json:"privacy"`
	Timestamp     string            `json:"timestamp"`
	QuizAnswers   map[string]string `json:"quizAnswers,omitempty"`
	QuizStartTime string            `json:"quizStartTime,omitempty"`
}

// Wire is the fixed body accepted by the collection endpoint's sheet.
type Wire struct {
	Timestamp       string `json:"timestamp"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Availability    string `json:"availability"`
	PrivacyAccepted string `json:"privacy_accepted"`

	Q1 string `json:"q1"`
	Q2 string `json:"q2"`
	// the sheet column for q3 is named q3r
	Q3R string `json:"q3r"`
	Q4  string `json:"q4"`
	Q5  string `json:"q5"`
	Q6  string `json:"q6"`

	QuizStartTime string `json:"quiz_start_time"`
}

// Snapshot copies the answers so later session writes cannot leak into a
// payload already being delivered.
func (s *Session) Snapshot() map[string]string {
	if s == nil || s.Answers == nil {
		return nil
	}
	return maps.Clone(s.Answers)
}

// Wire maps the payload onto the fixed wire shape. Answer keys outside
// q1..q6 are dropped here; missing ones become empty strings.
func (p Payload) Wire() Wire {
	privacy := "Nein"
	if p.Privacy {
		privacy = "Ja"
	}
	a := p.QuizAnswers
	return Wire{
		Timestamp:       p.Timestamp,
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Availability:    p.Availability,
		PrivacyAccepted: privacy,

		Q1:  a["q1"],
		Q2:  a["q2"],
		Q3R: a["q3"],
		Q4:  a["q4"],
		Q5:  a["q5"],
		Q6:  a["q6"],

		QuizStartTime: p.QuizStartTime,
	}
}
