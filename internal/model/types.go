// Package model defines shared data structures.
package model

import "time"

// Config defines drill settings.
type Config struct {
	Sets         []string
	TrialSeconds int
	Bell         bool
}

// Record is one answered question.
type Record struct {
	Grapheme   string
	Input      string
	Expected   string
	Correct    bool
	AnsweredAt time.Time
}

// CharAggregate aggregates answers for one grapheme.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}
