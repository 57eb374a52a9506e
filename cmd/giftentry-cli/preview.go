package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	giftentry "github.com/goliatone/go-giftentry"
	"github.com/goliatone/go-giftentry/pkg/mapping"
)

func runPreview(ctx context.Context, cfg config, logger *zap.Logger, args []string) error {
	flags := flag.NewFlagSet("preview", flag.ExitOnError)
	templatesLocation := flags.String("templates", cfg.templateLocation(), "template directory or service URL")
	templateName := flags.String("template", cfg.TemplateName, "template to render")
	renderer := flags.String("renderer", "html", "renderer to use")
	showMappings := flags.Bool("mappings", false, "annotate fields with their Data Import field")
	output := flags.String("output", "", "output file (stdout if empty)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	service, err := giftentry.OpenTemplates(*templatesLocation)
	if err != nil {
		return err
	}
	registry := mapping.New(
		mapping.WithTemplateService(service),
		mapping.WithTemplateName(*templateName),
		mapping.WithLogger(logger.Named("mapping")),
	)
	if err := registry.Load(ctx); err != nil {
		return err
	}
	template, err := registry.Template()
	if err != nil {
		return err
	}

	var options giftentry.RenderOptions
	if *showMappings {
		options.Mappings = giftentry.SourceMappings(template, registry)
	}

	renderers, err := giftentry.NewRenderRegistry()
	if err != nil {
		return err
	}
	out, err := renderers.Render(ctx, *renderer, template, options)
	if err != nil {
		return err
	}
	return writeOutput(*output, out)
}
