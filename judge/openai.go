/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/GitCraigRash/just-eval/executor/openaiexecutor"
	"github.com/GitCraigRash/just-eval/metrics"
	"github.com/GitCraigRash/just-eval/promptbuilder"
	"github.com/GitCraigRash/just-eval/result"
)

// openaiJudge implements Interface using an OpenAI chat model
type openaiJudge struct {
	executor openaiexecutor.Interface
	metrics  *metrics.GenAI
	model    string
}

// NewOpenAI creates a judge backed by the named OpenAI chat model.
// Judgements run with temperature zero so repeated runs stay comparable;
// callers can override any executor setting through opts.
func NewOpenAI(apiKey, model string, opts ...openaiexecutor.Option) (Interface, error) {
	judgeOpts := []openaiexecutor.Option{ //nolint: prealloc
		openaiexecutor.WithModel(model),
		openaiexecutor.WithMaxTokens(1024),
		openaiexecutor.WithTemperature(0),
	}
	judgeOpts = append(judgeOpts, opts...) // Apply caller-provided options (e.g., base URL)
	exec, err := openaiexecutor.New(apiKey, judgeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create judge executor: %w", err)
	}

	return &openaiJudge{
		executor: exec,
		metrics:  metrics.NewGenAI("justeval.ai"),
		model:    model,
	}, nil
}

// Judge implements Interface
func (j *openaiJudge) Judge(ctx context.Context, request *Request) (Result, error) {
	// Validate request and select prompt based on mode
	var prompt *promptbuilder.Prompt

	switch request.Mode {
	case MultiAspectMode:
		prompt = multiScorePrompt
	case SafetyMode:
		prompt = safetyScorePrompt
	default:
		return nil, fmt.Errorf("unsupported mode: %q", request.Mode)
	}

	if request.Instruction == "" {
		return nil, errors.New("instruction is required")
	}
	if request.Candidate == "" {
		return nil, errors.New("candidate is required")
	}

	bound, err := request.Bind(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to bind judgement prompt: %w", err)
	}
	text, err := bound.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build judgement prompt: %w", err)
	}

	texts, err := j.executor.Execute(ctx, openaiexecutor.Request{Prompt: text})
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, errors.New("no choices in model response")
	}

	// A garbled judgement is recorded as missing rather than failing the
	// whole run; result.Parse has already logged the raw response.
	parsed := result.Parse[Result](ctx, texts[0], result.FieldScore)
	if parsed == nil {
		return nil, nil
	}

	verdicts := *parsed
	for aspect, verdict := range verdicts {
		if !verdict.Score.InRange() {
			clog.FromContext(ctx).With("aspect", string(aspect)).
				With("score", float64(verdict.Score)).
				Warn("Judgement score outside the 1 to 5 scale")
		}
	}

	j.metrics.RecordJudgement(ctx, j.model, string(request.Mode))
	return verdicts, nil
}
