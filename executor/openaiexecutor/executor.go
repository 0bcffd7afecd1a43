/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/chainguard-dev/clog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/GitCraigRash/just-eval/executor/retry"
	"github.com/GitCraigRash/just-eval/metrics"
)

// DefaultSystemPrompt is prepended when a request supplies a bare prompt
// instead of explicit messages.
const DefaultSystemPrompt = "You are an AI assistant that helps people find information."

// ErrNotAuthenticated is returned by Execute when the executor was built
// without an API key.
var ErrNotAuthenticated = errors.New("no API key configured")

// GenerationAbortedError reports a choice that finished for a reason other
// than a natural stop or the token limit, such as a content filter. The
// whole call fails; aborted generations are never retried.
type GenerationAbortedError struct {
	// Index is the position of the offending choice in the response.
	Index int
	// Reason is the provider's finish reason verbatim.
	Reason string
}

// Error implements error.
func (e *GenerationAbortedError) Error() string {
	return fmt.Sprintf("generation aborted: choice %d finished with reason %q", e.Index, e.Reason)
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one chat-completion call. Exactly one of Prompt or
// Messages should be set; a bare Prompt is wrapped in a system/user message
// pair. Zero-valued sampling knobs fall back to the executor defaults.
type Request struct {
	// Model overrides the executor's model for this request.
	Model string `json:"model,omitempty"`
	// Engine names an Azure-style deployment; consulted when Model is empty.
	Engine string `json:"engine,omitempty"`

	Temperature      float32  `json:"temperature,omitempty"`
	MaxTokens        int      `json:"max_tokens,omitempty"`
	TopP             float32  `json:"top_p,omitempty"`
	FrequencyPenalty float32  `json:"frequency_penalty,omitempty"`
	PresencePenalty  float32  `json:"presence_penalty,omitempty"`
	Stop             []string `json:"stop,omitempty"`
	// N is the number of choices to generate (default 1).
	N int `json:"n,omitempty"`

	Prompt   string    `json:"prompt,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

// Interface is the executor's public surface.
type Interface interface {
	// Execute runs one chat-completion request and returns the generated
	// texts in provider order, one per choice.
	Execute(ctx context.Context, req Request) ([]string, error)
	// Generate is a convenience wrapper for free-form generation: a single
	// user message, one choice, and a roomy completion budget. The result
	// is trimmed of surrounding whitespace.
	Generate(ctx context.Context, input string) (string, error)
}

// executor provides the private implementation
type executor struct {
	client       *openai.Client
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	modelName    string
	systemPrompt string
	maxTokens    int
	temperature  float32
	topP         float32
	policy       retry.Policy
	classify     retry.Classifier
	genaiMetrics *metrics.GenAI
}

// generateMaxTokens is the completion budget for Generate calls, which
// produce free-form text rather than compact verdicts.
const generateMaxTokens = 2048

// New creates an executor for the given API key. An empty key is allowed at
// construction time so configuration can be assembled before credentials
// are known; Execute rejects it.
func New(apiKey string, opts ...Option) (Interface, error) {
	e := &executor{
		apiKey:       apiKey,
		modelName:    "gpt-4",
		systemPrompt: DefaultSystemPrompt,
		maxTokens:    512,
		temperature:  0,
		topP:         1,
		policy:       retry.DefaultPolicy(),
		classify:     ClassifyError,
		genaiMetrics: metrics.NewGenAI("justeval.ai"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	config := openai.DefaultConfig(apiKey)
	if e.baseURL != "" {
		config.BaseURL = e.baseURL
	}
	if e.httpClient != nil {
		config.HTTPClient = e.httpClient
	}
	e.client = openai.NewClientWithConfig(config)

	return e, nil
}

// Execute runs one chat-completion request through the retry policy and
// checks every returned choice's finish reason.
func (e *executor) Execute(ctx context.Context, req Request) ([]string, error) {
	if e.apiKey == "" {
		return nil, ErrNotAuthenticated
	}

	ccr, err := e.completionRequest(req)
	if err != nil {
		return nil, err
	}

	clog.FromContext(ctx).With("model", ccr.Model).
		With("messages", len(ccr.Messages)).
		With("choices", ccr.N).
		Debug("Executing chat completion")

	resp, err := retry.RetryWithPolicy(ctx, e.policy, "chat_completion", e.classify, func() (openai.ChatCompletionResponse, error) {
		return e.client.CreateChatCompletion(ctx, ccr)
	})
	if err != nil {
		return nil, err
	}

	if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, ccr.Model,
			int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens))
	}

	// A successful round trip can still carry aborted choices; the check
	// runs after the retry loop so abnormal finishes are never retried.
	texts := make([]string, 0, len(resp.Choices))
	for i, choice := range resp.Choices {
		switch choice.FinishReason {
		case openai.FinishReasonStop, openai.FinishReasonLength:
			texts = append(texts, choice.Message.Content)
		default:
			return nil, &GenerationAbortedError{Index: i, Reason: string(choice.FinishReason)}
		}
	}
	return texts, nil
}

// Generate issues a single-choice free-form request for the given input.
func (e *executor) Generate(ctx context.Context, input string) (string, error) {
	texts, err := e.Execute(ctx, Request{
		Messages:  []Message{{Role: openai.ChatMessageRoleUser, Content: input}},
		MaxTokens: generateMaxTokens,
		N:         1,
	})
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", errors.New("no choices in model response")
	}
	return strings.TrimSpace(texts[0]), nil
}

// completionRequest maps a Request onto the wire type, synthesizing
// messages and applying executor defaults.
func (e *executor) completionRequest(req Request) (openai.ChatCompletionRequest, error) {
	messages := make([]openai.ChatCompletionMessage, 0, max(len(req.Messages), 2))
	switch {
	case len(req.Messages) > 0:
		for _, m := range req.Messages {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    m.Role,
				Content: m.Content,
			})
		}
	case req.Prompt != "":
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: e.systemPrompt},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		)
	default:
		return openai.ChatCompletionRequest{}, errors.New("chat request requires a prompt or messages")
	}

	model := req.Model
	if model == "" {
		model = req.Engine
	}
	if model == "" {
		model = e.modelName
	}

	temperature := e.temperature
	if req.Temperature != 0 {
		temperature = req.Temperature
	}
	if temperature == 0 {
		// The wire codec omits a zero temperature and the provider then
		// defaults to 1; the smallest positive value keeps sampling
		// effectively greedy.
		temperature = math.SmallestNonzeroFloat32
	}

	topP := e.topP
	if req.TopP != 0 {
		topP = req.TopP
	}

	maxTokens := e.maxTokens
	if req.MaxTokens != 0 {
		maxTokens = req.MaxTokens
	}

	n := req.N
	if n == 0 {
		n = 1
	}

	return openai.ChatCompletionRequest{
		Model:            model,
		Messages:         messages,
		Temperature:      temperature,
		TopP:             topP,
		MaxTokens:        maxTokens,
		N:                n,
		Stop:             req.Stop,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
	}, nil
}
