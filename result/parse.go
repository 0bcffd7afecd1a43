/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"context"
	"encoding/json"

	"github.com/chainguard-dev/clog"
)

// RepairFunc rewrites a raw model response before JSON decoding. Repair is
// the default; substitute another for providers with different failure
// modes.
type RepairFunc func(raw, field string) string

// Parse leniently decodes a model response into T: extract the payload from
// any markdown fence, repair the reason spans anchored on field, then
// unmarshal. Decode failures are logged together with the original response
// and reported as nil; Parse never panics and never returns an error.
func Parse[T any](ctx context.Context, raw, field string) *T {
	return ParseWith[T](ctx, Repair, raw, field)
}

// ParseWith is Parse with a caller-chosen repair strategy.
func ParseWith[T any](ctx context.Context, repair RepairFunc, raw, field string) *T {
	fixed := repair(ExtractJSON(raw), field)

	var out T
	if err := json.Unmarshal([]byte(fixed), &out); err != nil {
		clog.FromContext(ctx).
			With("error", err.Error()).
			With("raw", raw).
			Warn("Failed to decode model response")
		return nil
	}
	return &out
}
