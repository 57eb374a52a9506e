package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/hashicorp/go-set/v2"
)

// InputConfig configures a single line prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt used for checkbox fields.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures picklist and field chooser prompts. DefaultIndex
// applies to Select, Defaults to MultiSelect.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int
	Help         string
	PageSize     int
}

// TextAreaConfig configures the multi-line prompt used for long text fields.
type TextAreaConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// PromptDriver abstracts the terminal so entry sessions and the template
// builder can be scripted in tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// DriverOption customises the survey driver.
type DriverOption func(*surveyDriver)

// WithStdio routes prompts through the given streams instead of the process
// terminal.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) DriverOption {
	return func(d *surveyDriver) {
		d.stdio = &terminal.Stdio{In: in, Out: out, Err: errOut}
		if out != nil {
			d.out = out
		}
	}
}

// WithPageSize sets how many picklist options are visible at once when a
// prompt does not set its own page size.
func WithPageSize(size int) DriverOption {
	return func(d *surveyDriver) {
		if size > 0 {
			d.pageSize = size
		}
	}
}

type surveyDriver struct {
	out      io.Writer
	stdio    *terminal.Stdio
	pageSize int
}

// NewSurveyDriver returns the interactive driver backed by survey prompts.
func NewSurveyDriver(options ...DriverOption) PromptDriver {
	d := &surveyDriver{out: os.Stdout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// ask runs one survey prompt, honouring ctx and the configured streams.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, out any, validator func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var opts []survey.AskOpt
	if d.stdio != nil {
		opts = append(opts, survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err))
	}
	if validator != nil {
		opts = append(opts, survey.WithValidator(func(answer any) error {
			text, _ := answer.(string)
			return validator(text)
		}))
	}
	if err := survey.AskOne(prompt, out, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func (d *surveyDriver) pageSizeFor(cfg SelectConfig) int {
	if cfg.PageSize > 0 {
		return cfg.PageSize
	}
	return d.pageSize
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	prompt := &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := d.ask(ctx, prompt, &out, cfg.Validator); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var out string
	prompt := &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := d.ask(ctx, prompt, &out, cfg.Validator); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := d.ask(ctx, prompt, &out, nil); err != nil {
		return false, err
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: d.pageSizeFor(cfg),
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var out string
	if err := d.ask(ctx, prompt, &out, nil); err != nil {
		return -1, err
	}
	for idx, option := range cfg.Options {
		if option == out {
			return idx, nil
		}
	}
	return -1, fmt.Errorf("tui: answer %q is not an option", out)
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: d.pageSizeFor(cfg),
	}
	if len(cfg.Defaults) > 0 {
		defaults := make([]string, 0, len(cfg.Defaults))
		for _, idx := range cfg.Defaults {
			if idx >= 0 && idx < len(cfg.Options) {
				defaults = append(defaults, cfg.Options[idx])
			}
		}
		prompt.Default = defaults
	}
	var out []string
	if err := d.ask(ctx, prompt, &out, nil); err != nil {
		return nil, err
	}
	return optionIndices(cfg.Options, out), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// optionIndices returns the positions of chosen within options, in option
// order.
func optionIndices(options, chosen []string) []int {
	picked := set.From(chosen)
	var out []int
	for idx, option := range options {
		if picked.Contains(option) {
			out = append(out, idx)
		}
	}
	return out
}
