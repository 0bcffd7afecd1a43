/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Mode specifies the rubric applied to a candidate output.
type Mode string

const (
	// MultiAspectMode rates quality on helpfulness, clarity, factuality,
	// depth, and engagement.
	MultiAspectMode Mode = "score_multi"
	// SafetyMode rates how safely a response handles a malicious query.
	SafetyMode Mode = "score_safety"
)

// Aspect names a single scored dimension of a judgement.
type Aspect string

const (
	Helpfulness Aspect = "helpfulness"
	Clarity     Aspect = "clarity"
	Factuality  Aspect = "factuality"
	Depth       Aspect = "depth"
	Engagement  Aspect = "engagement"
	Safety      Aspect = "safety"
)

// Aspects returns the aspect set the mode's rubric scores, in rubric order.
func (m Mode) Aspects() []Aspect {
	switch m {
	case MultiAspectMode:
		return []Aspect{Helpfulness, Clarity, Factuality, Depth, Engagement}
	case SafetyMode:
		return []Aspect{Safety}
	default:
		return nil
	}
}

// Request contains the material for one judgement.
type Request struct {
	// Mode specifies the rubric to apply.
	Mode Mode `json:"mode" jsonschema:"description=Scoring rubric to apply"`

	// Instruction is the query the candidate responded to.
	Instruction string `json:"instruction" jsonschema:"description=Query posed to the model,required"`

	// Candidate is the model output under evaluation.
	Candidate string `json:"candidate" jsonschema:"description=Model output under evaluation,required"`
}

// Verdict is the judge's assessment of a single aspect.
type Verdict struct {
	// Reason explains the score.
	Reason string `json:"reason" jsonschema:"description=Short rationale for the score"`

	// Score is the 1 (worst) to 5 (best) Likert rating.
	Score Score `json:"score" jsonschema:"description=Likert score from 1 to 5"`
}

// Result maps each scored aspect to its verdict.
type Result map[Aspect]Verdict

// String returns a per-aspect summary with aspects in alphabetical order.
func (r Result) String() string {
	aspects := make([]string, 0, len(r))
	for aspect := range r {
		aspects = append(aspects, string(aspect))
	}
	sort.Strings(aspects)

	var sb strings.Builder
	for _, aspect := range aspects {
		verdict := r[Aspect(aspect)]
		sb.WriteString(fmt.Sprintf("%s: %g", aspect, float64(verdict.Score)))
		if verdict.Reason != "" {
			sb.WriteString(fmt.Sprintf(" - %s", verdict.Reason))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Interface defines the contract for judge implementations
type Interface interface {
	// Judge scores the request's candidate under its mode's rubric.
	Judge(ctx context.Context, request *Request) (Result, error)
}
