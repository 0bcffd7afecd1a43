/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder provides immutable prompt templates with explicit
// placeholder binding.
//
// Templates declare placeholders with double-brace syntax ({{name}}) and are
// parsed once at construction. Every placeholder must be bound before Build
// succeeds, which catches missing values at the call site instead of sending
// a half-filled prompt to the model.
//
// # Usage
//
// Judging templates are typically package-level variables:
//
//	var scoringPrompt = promptbuilder.MustNewPrompt(`## Query:
//	{{instruction}}
//
//	## Output:
//	{{candidate}}`)
//
// Request types bind their fields and the result is built into the final
// prompt string:
//
//	p, err := scoringPrompt.BindText("instruction", req.Instruction)
//	if err != nil {
//		return err
//	}
//	p, err = p.BindText("candidate", req.Candidate)
//	if err != nil {
//		return err
//	}
//	prompt, err := p.Build()
//
// # Binding kinds
//
// BindStringLiteral accepts only compile-time string literals (enforced by a
// private parameter type) and is meant for developer-authored fragments.
// BindText accepts arbitrary runtime strings and inserts them verbatim; use
// it for user-supplied bodies such as the instruction and the candidate
// response being judged. BindJSON and BindYAML marshal structured data, so
// brace sequences inside the data are escaped rather than re-parsed as
// placeholders.
//
// Prompts are immutable: each Bind call returns a new Prompt, leaving the
// original (often a shared package variable) untouched and safe for
// concurrent use.
package promptbuilder
