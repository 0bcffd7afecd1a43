/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import "strings"

// ExtractJSON returns the JSON payload of a model response. Responses often
// wrap the requested JSON in a markdown code fence; the content of the first
// ```json fence wins. Without a fenced block the response is trimmed and any
// inline fence markers are stripped.
func ExtractJSON(text string) string {
	if block, ok := fencedBlock(text); ok {
		return block
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// fencedBlock collects the lines of the first ```json fence, up to its
// closing ``` or the end of the input. The markers must sit on their own
// lines.
func fencedBlock(text string) (string, bool) {
	var block []string
	open := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case !open:
			if line == "```json" {
				open = true
			}
		case line == "```":
			return strings.TrimSpace(strings.Join(block, "\n")), true
		default:
			block = append(block, line)
		}
	}
	if open {
		return strings.TrimSpace(strings.Join(block, "\n")), true
	}
	return "", false
}
