// seehuhn.de/go/glitch - generative cover art distortion
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glitch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// Choice is the answer to the binary quiz question.
type Choice string

// The two options of the second question.
const (
	ChoiceOr     Choice = "or"
	ChoiceArgent Choice = "argent"
)

// Valid reports whether c is one of the two options.
func (c Choice) Valid() bool {
	return c == ChoiceOr || c == ChoiceArgent
}

// Slider bounds of the first and third question.
const (
	MinSlider = 0
	MaxSlider = 10
)

// StaleAfter is the age beyond which stored answers are ignored.
const StaleAfter = 30 * time.Minute

// ErrInvalidAnswers is returned when a stored answer record cannot be
// used.
var ErrInvalidAnswers = errors.New("invalid answer record")

// AnswerRecord holds the three quiz answers.
type AnswerRecord struct {
	Question1 float64 `json:"question1"`
	Question2 Choice  `json:"question2"`
	Question3 float64 `json:"question3"`

	// Timestamp is the time the answers were given, in milliseconds since
	// the Unix epoch.  Zero means unknown; such records never go stale.
	Timestamp int64 `json:"timestamp,omitempty"`
}

// Validate checks that all answers are within their ranges.
func (a *AnswerRecord) Validate() error {
	if !validSlider(a.Question1) {
		return fmt.Errorf("%w: question1 = %v", ErrInvalidAnswers, a.Question1)
	}
	if !a.Question2.Valid() {
		return fmt.Errorf("%w: question2 = %q", ErrInvalidAnswers, a.Question2)
	}
	if !validSlider(a.Question3) {
		return fmt.Errorf("%w: question3 = %v", ErrInvalidAnswers, a.Question3)
	}
	if a.Timestamp < 0 {
		return fmt.Errorf("%w: negative timestamp", ErrInvalidAnswers)
	}
	return nil
}

func validSlider(v float64) bool {
	return !math.IsNaN(v) && v >= MinSlider && v <= MaxSlider
}

// Time returns the time the answers were given.
func (a *AnswerRecord) Time() (time.Time, bool) {
	if a.Timestamp == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(a.Timestamp), true
}

// Stale reports whether the record is older than StaleAfter at time now.
func (a *AnswerRecord) Stale(now time.Time) bool {
	t, ok := a.Time()
	return ok && now.Sub(t) > StaleAfter
}

// answerWire mirrors AnswerRecord with pointer fields, so that missing
// answers can be told apart from zero.
type answerWire struct {
	Question1 *float64 `json:"question1"`
	Question2 *Choice  `json:"question2"`
	Question3 *float64 `json:"question3"`
	Timestamp *int64   `json:"timestamp"`
}

// ParseAnswerRecord decodes a stored record.  Unknown or missing fields
// and out-of-range answers are errors wrapping ErrInvalidAnswers; a
// record is either fully usable or rejected.
func ParseAnswerRecord(data []byte) (*AnswerRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w answerWire
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidAnswers)
	}
	if w.Question1 == nil || w.Question2 == nil || w.Question3 == nil {
		return nil, fmt.Errorf("%w: missing answer", ErrInvalidAnswers)
	}

	a := &AnswerRecord{
		Question1: *w.Question1,
		Question2: *w.Question2,
		Question3: *w.Question3,
	}
	if w.Timestamp != nil {
		a.Timestamp = *w.Timestamp
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// DeriveParameters maps quiz answers to distortion settings.  A nil or
// invalid record gives empty overrides, so that the defaults stand.
func DeriveParameters(a *AnswerRecord) Overrides {
	if a == nil || a.Validate() != nil {
		return Overrides{}
	}

	slices := int(math.Floor(a.Question1 * 5))
	opacity := 0.7
	angle := 135.0
	if a.Question2 == ChoiceOr {
		opacity = 0.9
		angle = 45
	}
	offset := a.Question3 * 10
	aberration := a.Question1 * 3
	noise := a.Question3 / 10

	return Overrides{
		VerticalSliceCount:  &slices,
		ImageOpacity:        &opacity,
		VerticalOffset:      &offset,
		ChromaticAberration: &aberration,
		ChromaticAngle:      &angle,
		NoiseIntensity:      &noise,
	}
}
