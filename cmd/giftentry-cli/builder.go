package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	giftentry "github.com/goliatone/go-giftentry"
	"github.com/goliatone/go-giftentry/pkg/catalog"
	"github.com/goliatone/go-giftentry/pkg/editor"
	"github.com/goliatone/go-giftentry/pkg/mapping"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/renderers/tui"
)

type builderOutput struct {
	BatchHeaderFields []model.SelectedField `yaml:"batchHeaderFields"`
}

func runBuilder(ctx context.Context, cfg config, logger *zap.Logger, args []string) error {
	flags := flag.NewFlagSet("builder", flag.ExitOnError)
	catalogSource := flags.String("catalog", cfg.Catalog, "OpenAPI field catalog path or URL")
	templatesLocation := flags.String("templates", cfg.templateLocation(), "template directory or service URL, used to seed the selection")
	templateName := flags.String("template", cfg.TemplateName, "template to seed the selection from")
	batchObject := flags.String("object", catalog.DefaultBatchObject, "catalog object listing batch fields")
	required := flags.String("required", strings.Join(editor.DefaultRequiredKeys, ","), "comma separated keys that must stay selected")
	output := flags.String("output", "", "output file (stdout if empty)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *catalogSource == "" {
		return errors.New("catalog source is required")
	}

	fields, err := giftentry.LoadCatalog(ctx, *catalogSource, nil,
		catalog.WithBatchObject(*batchObject),
		catalog.WithLogger(logger.Named("catalog")),
	)
	if err != nil {
		return err
	}

	ed := editor.New(
		editor.WithRequiredKeys(splitList(*required)...),
		editor.WithLogger(logger.Named("editor")),
	)
	if *templatesLocation != "" {
		seed, err := seedSelection(ctx, *templatesLocation, *templateName, logger)
		if err != nil {
			return err
		}
		if err := ed.SetSelected(seed); err != nil {
			return err
		}
	}
	if err := ed.Load(ctx, fields); err != nil {
		return err
	}

	selected, err := tui.NewBuilder(nil).Run(ctx, ed)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(builderOutput{BatchHeaderFields: selected})
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	return writeOutput(*output, data)
}

func seedSelection(ctx context.Context, location, name string, logger *zap.Logger) ([]model.SelectedField, error) {
	service, err := giftentry.OpenTemplates(location)
	if err != nil {
		return nil, err
	}
	registry := mapping.New(
		mapping.WithTemplateService(service),
		mapping.WithTemplateName(name),
		mapping.WithLogger(logger.Named("mapping")),
	)
	if err := registry.Load(ctx); err != nil {
		return nil, err
	}
	template, err := registry.Template()
	if err != nil {
		return nil, err
	}
	return template.BatchHeaderFields, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
