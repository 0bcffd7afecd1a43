/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/GitCraigRash/just-eval/executor/retry"
	"github.com/GitCraigRash/just-eval/metrics"
)

// Option is a functional option for configuring the executor
type Option func(*executor) error

// WithModel overrides the default model name
func WithModel(model string) Option {
	return func(e *executor) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		e.modelName = model
		return nil
	}
}

// WithMaxTokens sets the default completion budget for requests that do not
// carry their own
func WithMaxTokens(tokens int) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		if tokens > 32768 {
			return fmt.Errorf("max tokens %d exceeds maximum of 32768", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the default sampling temperature.
// The chat API accepts values from 0.0 to 2.0; judging keeps it at 0 so
// repeated runs score consistently.
func WithTemperature(temp float32) Option {
	return func(e *executor) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithTopP sets the default nucleus sampling bound
func WithTopP(p float32) Option {
	return func(e *executor) error {
		if p <= 0.0 || p > 1.0 {
			return fmt.Errorf("top_p must be in (0.0, 1.0], got %f", p)
		}
		e.topP = p
		return nil
	}
}

// WithSystemPrompt replaces the system message synthesized for bare-prompt
// requests
func WithSystemPrompt(prompt string) Option {
	return func(e *executor) error {
		if prompt == "" {
			return errors.New("system prompt cannot be empty")
		}
		e.systemPrompt = prompt
		return nil
	}
}

// WithBaseURL points the executor at an OpenAI-compatible endpoint, such as
// a proxy or a test server
func WithBaseURL(url string) Option {
	return func(e *executor) error {
		if url == "" {
			return errors.New("base URL cannot be empty")
		}
		e.baseURL = url
		return nil
	}
}

// WithHTTPClient replaces the transport used for API calls
func WithHTTPClient(client *http.Client) Option {
	return func(e *executor) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		e.httpClient = client
		return nil
	}
}

// WithRetryPolicy sets the retry policy for transient API errors.
// If not set, retry.DefaultPolicy() is used.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(e *executor) error {
		if err := policy.Validate(); err != nil {
			return err
		}
		e.policy = policy
		return nil
	}
}

// WithClassifier replaces the error classifier driving the retry loop.
// Endpoints with non-OpenAI error shapes supply their own mapping here.
func WithClassifier(classify retry.Classifier) Option {
	return func(e *executor) error {
		if classify == nil {
			return errors.New("classifier cannot be nil")
		}
		e.classify = classify
		return nil
	}
}

// WithAttributeEnricher sets a custom attribute enricher for metrics.
// The enricher runs before each metric is recorded, letting the application
// attach contextual attributes (dataset, run id, etc.).
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(e *executor) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}
