/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinScore is the lowest rating on the Likert scale.
	MinScore Score = 1
	// MaxScore is the highest rating on the Likert scale.
	MaxScore Score = 5
)

// Score is a 1 to 5 Likert rating. Judge models emit scores as JSON
// numbers or as numeric strings interchangeably, so both decode.
type Score float64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*s = Score(v)
		return nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("score %q is not numeric: %w", v, err)
		}
		*s = Score(f)
		return nil
	default:
		return fmt.Errorf("score must be a number or a numeric string, got %T", raw)
	}
}

// MarshalJSON implements json.Marshaler, normalizing scores to numbers.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(s))
}

// InRange reports whether the score falls on the 1 to 5 scale.
func (s Score) InRange() bool {
	return s >= MinScore && s <= MaxScore
}
