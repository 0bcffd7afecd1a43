/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Helpers that panic on error, for package-level prompt variables whose
// templates are known to be valid.

// Must wraps a call returning (*Prompt, error) and panics if the error is
// non-nil:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is sugar for Must(NewPrompt(template))
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindStringLiteral is sugar for Must(p.BindStringLiteral(name, value))
func (p *Prompt) MustBindStringLiteral(name string, value stringLiteral) *Prompt {
	return Must(p.BindStringLiteral(name, value))
}

// MustBindText is sugar for Must(p.BindText(name, value))
func (p *Prompt) MustBindText(name string, value string) *Prompt {
	return Must(p.BindText(name, value))
}

// MustBindJSON is sugar for Must(p.BindJSON(name, data))
func (p *Prompt) MustBindJSON(name string, data any) *Prompt {
	return Must(p.BindJSON(name, data))
}

// MustBindYAML is sugar for Must(p.BindYAML(name, data))
func (p *Prompt) MustBindYAML(name string, data any) *Prompt {
	return Must(p.BindYAML(name, data))
}
