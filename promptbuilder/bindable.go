/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by request types that know how to bind their own
// fields into a prompt template. Executors accept a Bindable so the same
// execution path serves different request shapes.
type Bindable interface {
	// Bind returns a new prompt with the receiver's values bound.
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop is a Bindable that leaves the prompt unchanged, for templates with no
// placeholders.
type Noop struct{}

// Bind implements Bindable
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}
