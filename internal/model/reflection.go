package model

import "time"

// VisionReview is a quarterly long-form reflection. Pure data: the engine
// stores and round-trips it but makes no decisions from it.
type VisionReview struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Wins      []string  `json:"wins,omitempty"`
	Course    []string  `json:"course_corrections,omitempty"`
	NextFocus []string  `json:"next_focus,omitempty"`
}

// LegacyLetter is an annual letter-to-future-self record. Pure data.
type LegacyLetter struct {
	ID       string    `json:"id"`
	At       time.Time `json:"at"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Values   []string  `json:"values,omitempty"`
	Promises []string  `json:"promises,omitempty"`
}
