/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result turns the JSON-shaped text a model returns into typed Go
values, tolerating the quoting mistakes models actually make.

Judging prompts ask for verdicts like:

	{
	  "helpfulness": {"reason": "[rationale]", "score": "[1 to 5]"}
	}

Models follow the shape but frequently embed unescaped double quotes inside
the rationale, which breaks strict JSON decoding:

	{"helpfulness": {"reason": "It answers "the" question well", "score": "4"}}

# Repair

Repair applies one narrow, idempotent fix: it locates each "reason" value by
scanning forward to the next quoted sibling field ("score" or "preference"),
drops the value's outer quotes, and rewrites every double quote inside the
span as a single quote:

	fixed := result.Repair(raw, result.FieldScore)
	// {"helpfulness": {"reason": "It answers 'the' question well",
	//         "score": "4"}}

Text without the reason/field pattern passes through untouched, and applying
Repair twice yields the first result, so it is safe to run on already-clean
responses.

# Parse

Parse composes the leniency steps and never raises: extract the payload from
a markdown fence when present, repair the reason spans, then decode.

	verdicts := result.Parse[map[string]Verdict](ctx, raw, result.FieldScore)
	if verdicts == nil {
		// decode failed; the error and raw response were logged
	}

A nil return is the only failure signal. Callers treat it as "skip this
record" so one malformed response never aborts a batch. ParseWith accepts a
substitute RepairFunc for providers whose failure modes need a different
rewrite.
*/
package result
