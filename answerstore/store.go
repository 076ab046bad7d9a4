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

// Package answerstore keeps quiz answers between the quiz and the cover
// page.
//
// A record is stored as JSON under a string key.  Three backends are
// provided:
//   - MemoryStore: in-process storage for tests and single-process use
//   - FileStore: one JSON file per key, for the command-line tool
//   - RedisStore: shared storage for several server instances
//
// Records older than glitch.StaleAfter are treated as absent and removed
// on read.  Records which cannot be decoded are treated as absent, too,
// but are left in place.
package answerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"seehuhn.de/go/glitch"
)

// ErrNotFound is returned by Store.Get when no record exists for a key.
var ErrNotFound = errors.New("not found")

// DefaultKey is the key used when the answers of a single user are kept.
const DefaultKey = "userAnswers"

// NewKey returns a fresh key for a record, for stores which hold the
// answers of several users.
func NewKey() string {
	return DefaultKey + ":" + uuid.NewString()
}

// Store is the interface for answer storage backends.  Stores deal in raw
// bytes; decoding and validation happen in Load.
type Store interface {
	// Get returns the data stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key, replacing any previous record.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes the record for key.  Deleting a missing record is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// Save stores a, stamped with the time now.
func Save(ctx context.Context, st Store, key string, a *glitch.AnswerRecord, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	rec := *a
	rec.Timestamp = now.UnixMilli()
	data, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	if err := st.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store answers %q: %w", key, err)
	}
	return nil
}

// Load retrieves the record stored under key, as seen at time now.
//
// Load returns nil, nil if there is no usable record: if the key is
// absent, if the record is malformed, or if it is stale.  Stale records
// are deleted.  Only failures of the store itself are returned as errors.
// Diagnostics go to the logger attached to ctx (see log.WithContext).
func Load(ctx context.Context, st Store, key string, now time.Time) (*glitch.AnswerRecord, error) {
	logger := log.FromContext(ctx)

	data, err := st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("load answers %q: %w", key, err)
	}

	a, err := glitch.ParseAnswerRecord(data)
	if err != nil {
		logger.Debug("ignoring stored answers", "key", key, "err", err)
		return nil, nil
	}
	if a.Stale(now) {
		logger.Debug("purging stale answers", "key", key, "age", now.Sub(time.UnixMilli(a.Timestamp)).Round(time.Second))
		if err := st.Delete(ctx, key); err != nil {
			return nil, fmt.Errorf("purge answers %q: %w", key, err)
		}
		return nil, nil
	}
	return a, nil
}
