/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the just-eval command line judge.
// It reads instruction and candidate pairs as JSON lines, scores each
// pair with an OpenAI judge model, and writes one result per line.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/GitCraigRash/just-eval/executor/openaiexecutor"
	"github.com/GitCraigRash/just-eval/executor/retry"
	"github.com/GitCraigRash/just-eval/judge"
	"github.com/GitCraigRash/just-eval/schema"
)

type config struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string `env:"OPENAI_API_KEY"`
	// BaseURL overrides the OpenAI endpoint, e.g. for Azure or a proxy.
	BaseURL string `env:"OPENAI_BASE_URL"`

	Model      string `env:"JUSTEVAL_MODEL,default=gpt-4"`
	Mode       string `env:"JUSTEVAL_MODE,default=score_multi"`
	RetryLimit int    `env:"JUSTEVAL_RETRY_LIMIT,default=30"`
}

// Suite is an optional YAML file describing one evaluation run. Set
// fields override the environment configuration.
type Suite struct {
	Name        string   `yaml:"name,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	Mode        string   `yaml:"mode,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Temperature *float32 `yaml:"temperature,omitempty"`
	RetryLimit  *int     `yaml:"retry_limit,omitempty"`
}

// Record is one line of evaluation input.
type Record struct {
	ID          json.Number `json:"id,omitempty"`
	Instruction string      `json:"instruction"`
	Candidate   string      `json:"candidate"`
}

// Outcome is one line of evaluation output.
type Outcome struct {
	ID          json.Number  `json:"id,omitempty" jsonschema:"description=Caller-assigned record identifier"`
	Instruction string       `json:"instruction" jsonschema:"description=Query posed to the model,required"`
	Candidate   string       `json:"candidate" jsonschema:"description=Model output under evaluation,required"`
	Mode        judge.Mode   `json:"mode" jsonschema:"description=Scoring rubric applied,required"`
	Verdicts    judge.Result `json:"verdicts,omitempty" jsonschema:"description=Per-aspect verdicts from the judge"`
	Error       string       `json:"error,omitempty" jsonschema:"description=Failure that prevented judgement"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	inputPath := flag.String("input", "-", "path to the JSONL evaluation input, or - for stdin")
	outputPath := flag.String("output", "-", "path to write JSONL results, or - for stdout")
	modeFlag := flag.String("mode", "", "scoring mode: score_multi or score_safety (overrides JUSTEVAL_MODE)")
	suitePath := flag.String("suite", "", "optional YAML suite overriding model and sampling settings")
	printSchema := flag.Bool("print-schema", false, "print the JSON schema of output records and exit")
	flag.Parse()

	if *printSchema {
		raw, err := schema.MarshalIndent(&Outcome{})
		if err != nil {
			clog.FatalContextf(ctx, "rendering schema: %v", err)
		}
		fmt.Println(string(raw))
		return
	}

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	var suite *Suite
	if *suitePath != "" {
		var err error
		if suite, err = loadSuite(*suitePath); err != nil {
			clog.FatalContextf(ctx, "loading suite: %v", err)
		}
		if suite.Name != "" {
			clog.InfoContextf(ctx, "Running suite %q", suite.Name)
		}
	}

	settings, err := resolveSettings(cfg, suite, *modeFlag)
	if err != nil {
		clog.FatalContextf(ctx, "resolving run settings: %v", err)
	}

	if cfg.APIKey == "" {
		clog.FatalContextf(ctx, "OPENAI_API_KEY must be set to run judgements")
	}

	judgeInstance, err := judge.NewOpenAI(cfg.APIKey, settings.Model, settings.options()...)
	if err != nil {
		clog.FatalContextf(ctx, "creating judge: %v", err)
	}

	in := io.Reader(os.Stdin)
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			clog.FatalContextf(ctx, "opening input: %v", err)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if *outputPath != "-" {
		f, err := os.Create(*outputPath)
		if err != nil {
			clog.FatalContextf(ctx, "creating output: %v", err)
		}
		defer f.Close()
		out = f
	}

	clog.InfoContextf(ctx, "Judging with model %s in mode %s", settings.Model, settings.Mode)
	count, err := run(ctx, judgeInstance, settings.Mode, in, out)
	if err != nil {
		clog.FatalContextf(ctx, "evaluation run failed: %v", err)
	}
	clog.InfoContextf(ctx, "Judged %d records", count)
}

// settings are the effective run parameters after merging the
// environment, the suite file, and the mode flag.
type settings struct {
	Model       string
	Mode        judge.Mode
	MaxTokens   int      // 0 keeps the judge default
	Temperature *float32 // nil keeps the judge default
	RetryLimit  int
	BaseURL     string
}

// resolveSettings merges the three configuration sources. The suite
// overrides the environment, and the mode flag overrides both.
func resolveSettings(cfg config, suite *Suite, modeFlag string) (settings, error) {
	s := settings{
		Model:      cfg.Model,
		Mode:       judge.Mode(cfg.Mode),
		RetryLimit: cfg.RetryLimit,
		BaseURL:    cfg.BaseURL,
	}

	if suite != nil {
		if suite.Model != "" {
			s.Model = suite.Model
		}
		if suite.Mode != "" {
			s.Mode = judge.Mode(suite.Mode)
		}
		if suite.MaxTokens > 0 {
			s.MaxTokens = suite.MaxTokens
		}
		if suite.Temperature != nil {
			s.Temperature = suite.Temperature
		}
		if suite.RetryLimit != nil {
			s.RetryLimit = *suite.RetryLimit
		}
	}

	if modeFlag != "" {
		s.Mode = judge.Mode(modeFlag)
	}

	if s.Mode.Aspects() == nil {
		return settings{}, fmt.Errorf("unsupported mode %q", s.Mode)
	}
	if s.RetryLimit < 0 {
		return settings{}, fmt.Errorf("retry limit cannot be negative, got %d", s.RetryLimit)
	}
	return s, nil
}

// options converts the settings into executor options for the judge.
func (s settings) options() []openaiexecutor.Option {
	policy := retry.DefaultPolicy()
	policy.MaxRetries = s.RetryLimit

	opts := []openaiexecutor.Option{openaiexecutor.WithRetryPolicy(policy)}
	if s.BaseURL != "" {
		opts = append(opts, openaiexecutor.WithBaseURL(s.BaseURL))
	}
	if s.MaxTokens > 0 {
		opts = append(opts, openaiexecutor.WithMaxTokens(s.MaxTokens))
	}
	if s.Temperature != nil {
		opts = append(opts, openaiexecutor.WithTemperature(*s.Temperature))
	}
	return opts
}

// loadSuite reads and parses a YAML suite file.
func loadSuite(path string) (*Suite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}
	var suite Suite
	if err := yaml.Unmarshal(raw, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite: %w", err)
	}
	return &suite, nil
}

// run judges every record on in and writes one outcome per line to out.
// A record that fails to judge is written with its error recorded so a
// long run survives individual failures. It returns the number of
// records judged.
func run(ctx context.Context, judgeInstance judge.Interface, mode judge.Mode, in io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	count := 0
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return count, err
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			clog.WarnContextf(ctx, "Skipping malformed record on line %d: %v", line, err)
			continue
		}

		outcome := judgeRecord(ctx, judgeInstance, mode, record)
		if outcome.Error != "" {
			clog.WarnContextf(ctx, "Record on line %d failed: %s", line, outcome.Error)
		}
		if err := encoder.Encode(outcome); err != nil {
			return count, fmt.Errorf("writing result: %w", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading input: %w", err)
	}
	return count, nil
}

// judgeRecord produces the outcome for a single record.
func judgeRecord(ctx context.Context, judgeInstance judge.Interface, mode judge.Mode, record Record) Outcome {
	outcome := Outcome{
		ID:          record.ID,
		Instruction: record.Instruction,
		Candidate:   record.Candidate,
		Mode:        mode,
	}

	verdicts, err := judgeInstance.Judge(ctx, &judge.Request{
		Mode:        mode,
		Instruction: record.Instruction,
		Candidate:   record.Candidate,
	})
	switch {
	case err != nil:
		outcome.Error = err.Error()
	case verdicts == nil:
		outcome.Error = "judge response could not be decoded"
	default:
		outcome.Verdicts = verdicts
	}
	return outcome
}
