/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/GitCraigRash/just-eval/executor/retry"
)

// ClassifyError maps OpenAI API failures onto retry classes. Structured
// status codes are consulted first; the "Invalid" substring match that
// catches malformed-request messages is an OpenAI-specific shim, which is
// why the whole classifier is swappable via WithClassifier.
func ClassifyError(err error) retry.Classification {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return retry.Classification{
				Class: retry.RateLimited,
				Wait:  parseRetryAfter(apiErr.Message),
			}
		}
		if strings.Contains(apiErr.Message, "Invalid") {
			return retry.Classification{Class: retry.Fatal}
		}
		return retry.Classification{Class: retry.Retryable}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return retry.Classification{Class: retry.RateLimited}
		}
		return retry.Classification{Class: retry.Retryable}
	}

	// Transport and decoding failures arrive unstructured; the substring
	// check still applies before treating them as transient.
	if strings.Contains(err.Error(), "Invalid") {
		return retry.Classification{Class: retry.Fatal}
	}
	return retry.Classification{Class: retry.Retryable}
}

// parseRetryAfter extracts the integer seconds following the word "after"
// in a rate-limit message, as in "Rate limit reached. Please try again
// after 12 seconds.". Zero means no usable hint was found.
func parseRetryAfter(message string) time.Duration {
	fields := strings.Fields(message)
	for i, field := range fields {
		if field != "after" || i+1 >= len(fields) {
			continue
		}
		if n, err := strconv.Atoi(fields[i+1]); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 0
}
