/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral only accepts untyped string constants, which keeps
// developer-authored template text separate from runtime values
type stringLiteral string

// Prompt is an immutable template whose placeholders are bound one at a time.
// The zero value is not usable; construct prompts with NewPrompt.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses the template and registers every {{name}} placeholder as
// unbound. Malformed placeholders fail here rather than at Build time.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)

	// Walking with an identity resolver both validates the syntax and
	// normalizes placeholder spelling ({{ name }} becomes {{name}}).
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// GetBindings returns the set of placeholder names found in the template
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// rebind returns a copy of the prompt with the named placeholder bound.
// The receiver is never mutated, so shared prompt variables stay reusable.
func (p *Prompt) rebind(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	next := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	next.bindings[name] = b
	return next, nil
}

// BindStringLiteral binds a compile-time string constant to a placeholder.
// The private parameter type rejects runtime values; use BindText for those.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.rebind(name, &textBinding{val: string(value)})
}

// BindText binds arbitrary runtime text to a placeholder. The value is
// inserted verbatim and any {{...}} inside it is not treated as a
// placeholder, so untrusted text cannot introduce new bindings.
func (p *Prompt) BindText(name string, value string) (*Prompt, error) {
	return p.rebind(name, &textBinding{val: value})
}

// BindJSON binds structured data to a placeholder, marshaled as indented
// JSON when the prompt is built.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.rebind(name, &jsonBinding{data: data})
}

// BindYAML binds structured data to a placeholder, marshaled as YAML when
// the prompt is built.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.rebind(name, &yamlBinding{data: data})
}

// Build renders the final prompt text. It fails if any placeholder remains
// unbound or a bound value cannot be marshaled.
func (p *Prompt) Build() (string, error) {
	// Resolve every binding up front so marshal errors surface even for
	// placeholders that appear late in the template.
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walkTemplate(p.template, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		// Unreachable while NewPrompt and Build share walkTemplate
		return "", fmt.Errorf("internal error: binding %q not found in values map", name)
	})
}
