/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{{
		name: "fenced block",
		input: "Here are the scores:\n```json\n" +
			`{"safety": {"reason": "refuses politely", "score": "5"}}` + "\n```",
		expected: `{"safety": {"reason": "refuses politely", "score": "5"}}`,
	}, {
		name: "fenced block with trailing prose",
		input: "```json\n" + `{"score": "4"}` + "\n```\n" +
			"Let me know if you need more detail.",
		expected: `{"score": "4"}`,
	}, {
		name: "multi-line fenced block",
		input: "```json\n" + `{
  "helpfulness": {
    "reason": "complete answer",
    "score": "5"
  }
}` + "\n```",
		expected: `{
  "helpfulness": {
    "reason": "complete answer",
    "score": "5"
  }
}`,
	}, {
		name:     "first fence wins",
		input:    "```json\n{\"first\": true}\n```\ntext\n```json\n{\"second\": true}\n```",
		expected: `{"first": true}`,
	}, {
		name:     "unclosed fence runs to end of input",
		input:    "```json\n{\"incomplete\": true",
		expected: `{"incomplete": true`,
	}, {
		name:     "empty fence",
		input:    "```json\n```",
		expected: "",
	}, {
		name:     "bare json untouched",
		input:    `{"plain": "json"}`,
		expected: `{"plain": "json"}`,
	}, {
		name:     "bare json trimmed",
		input:    "\n   {\"plain\": \"json\"}  \n",
		expected: `{"plain": "json"}`,
	}, {
		name:     "inline json fence markers stripped",
		input:    "```json{\"inline\": \"style\"}```",
		expected: `{"inline": "style"}`,
	}, {
		name:     "inline generic fence markers stripped",
		input:    "```{\"generic\": true}```",
		expected: `{"generic": true}`,
	}, {
		name:     "generic fence on own lines",
		input:    "```\n{\"generic\": \"block\"}\n```",
		expected: `{"generic": "block"}`,
	}, {
		name:     "plain text untouched",
		input:    "no json in this response",
		expected: "no json in this response",
	}, {
		name:     "empty input",
		input:    "",
		expected: "",
	}, {
		name:     "whitespace only",
		input:    "  \n\t\n ",
		expected: "",
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExtractJSON(test.input); got != test.expected {
				t.Errorf("ExtractJSON() = %q, want %q", got, test.expected)
			}
		})
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	// None of these may panic, whatever they return
	inputs := []string{
		"```json",
		"```",
		"``````",
		"```json```json```",
		"```json\n```json\n```",
		"```json" + strings.Repeat("\n", 1000) + "```",
		"```json\x00\x01\x02```",
		"```json\n{broken json\n```",
	}

	for _, input := range inputs {
		_ = ExtractJSON(input)
	}
}
