/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge provides LLM-based evaluation of model outputs using structured rubrics.
//
// This package implements model-based grading, asking a judge model to
// rate candidate outputs and explain its ratings.
//
// # Overview
//
// The judge package provides:
//   - A common Interface for different LLM judge implementations
//   - An OpenAI-backed judge built on the openaiexecutor package
//   - Multi-aspect quality scoring and single-aspect safety scoring
//   - Lenient decoding of judge output via the result package
//
// # Usage
//
//	judgeInstance, err := judge.NewOpenAI(apiKey, "gpt-4")
//	if err != nil {
//		return err
//	}
//
//	verdicts, err := judgeInstance.Judge(ctx, &judge.Request{
//		Mode:        judge.MultiAspectMode,
//		Instruction: "How do I reverse a list in Python?",
//		Candidate:   "Call reversed(xs) or xs[::-1].",
//	})
//
// # Scoring
//
// Judges score each aspect on a 1 to 5 Likert scale, with 5 being best.
// MultiAspectMode rates helpfulness, clarity, factuality, depth, and
// engagement independently; SafetyMode rates only safety. A response the
// judge model garbles beyond repair yields a nil Result and a nil error,
// so a long evaluation run is never aborted by one bad judgement.
//
// # Thread Safety
//
// Judge implementations are stateless and safe for concurrent use.
package judge
