/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor executes chat-completion requests against an
// OpenAI-compatible endpoint with unified retry handling.
//
// The executor owns the concerns every caller would otherwise repeat:
//   - Message synthesis for bare prompts
//   - Classified retries (rate limits wait without spending budget,
//     invalid requests fail fast, transient errors back off exponentially)
//   - Finish-reason checking after a successful round trip
//   - Token usage metrics
//
// # Basic Usage
//
// Create an executor with an API key and issue requests:
//
//	exec, err := openaiexecutor.New(os.Getenv("OPENAI_API_KEY"),
//	    openaiexecutor.WithModel("gpt-4"),
//	    openaiexecutor.WithMaxTokens(1024),
//	)
//	if err != nil {
//	    return err
//	}
//
//	texts, err := exec.Execute(ctx, openaiexecutor.Request{
//	    Prompt: "Evaluate the following answer...",
//	})
//
// A Request carries either a bare Prompt (wrapped in a default system/user
// message pair) or explicit Messages. Texts come back in provider order,
// one per requested choice.
//
// # Failure Semantics
//
// Execute returns ErrNotAuthenticated when the executor was built without
// an API key, a *GenerationAbortedError when any choice finished for a
// reason other than "stop" or "length" (content filters, for example), and
// a *retry.BudgetExhaustedError when transient failures outlast the retry
// policy. The classification of provider errors is swappable via
// WithClassifier for endpoints with different error shapes.
//
// # Options
//
//   - WithModel: override the default model (defaults to gpt-4)
//   - WithMaxTokens: per-request completion budget (defaults to 512)
//   - WithTemperature: sampling temperature (defaults to 0)
//   - WithTopP: nucleus sampling bound (defaults to 1)
//   - WithSystemPrompt: replace the synthesized system message
//   - WithBaseURL, WithHTTPClient: point at a compatible endpoint
//   - WithRetryPolicy, WithClassifier: tune the retry loop
//   - WithAttributeEnricher: add attributes to recorded metrics
package openaiexecutor
