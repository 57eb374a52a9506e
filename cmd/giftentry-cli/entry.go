package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	giftentry "github.com/goliatone/go-giftentry"
	"github.com/goliatone/go-giftentry/pkg/catalog"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/records"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/renderers/tui"
)

func runEntry(ctx context.Context, cfg config, logger *zap.Logger, args []string) error {
	flags := flag.NewFlagSet("entry", flag.ExitOnError)
	templatesLocation := flags.String("templates", cfg.templateLocation(), "template directory or service URL")
	templateName := flags.String("template", cfg.TemplateName, "template to render")
	endpoint := flags.String("records", cfg.RecordsEndpoint, "record-create endpoint (in-memory store if empty)")
	catalogSource := flags.String("catalog", cfg.Catalog, "OpenAPI catalog used to resolve picklists")
	recordType := flags.String("record-type", cfg.RecordTypeID, "record type used to filter picklist values")
	valuesFile := flags.String("values", "", "JSON file of section values; prompts when empty")
	if err := flags.Parse(args); err != nil {
		return err
	}

	service, err := giftentry.OpenTemplates(*templatesLocation)
	if err != nil {
		return err
	}
	store, err := recordService(*endpoint, cfg.RecordsToken, logger)
	if err != nil {
		return err
	}

	sessionCfg := giftentry.SessionConfig{
		Templates:    service,
		TemplateName: *templateName,
		Records:      store,
		Logger:       logger,
	}
	if *catalogSource != "" {
		describe, err := giftentry.LoadCatalog(ctx, *catalogSource, nil, catalog.WithLogger(logger.Named("catalog")))
		if err != nil {
			return err
		}
		sessionCfg.Describe = describe
		sessionCfg.DescribeObject = catalog.DefaultImportObject
		sessionCfg.RecordTypeID = *recordType
	}

	session := giftentry.NewSession(sessionCfg)
	if err := session.Load(ctx); err != nil {
		return err
	}

	sections, err := collectSections(ctx, session.Template(), *valuesFile)
	if err != nil {
		return err
	}
	page, err := session.Save(ctx, sections)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput("", data)
}

func recordService(endpoint, token string, logger *zap.Logger) (remote.RecordCreateService, error) {
	if endpoint == "" {
		logger.Warn("no record endpoint configured, saving in memory")
		return records.NewMemory(), nil
	}
	options := []records.HTTPOption{records.WithLogger(logger.Named("records"))}
	if token != "" {
		options = append(options, records.WithHeader("Authorization", "Bearer "+token))
	}
	service, err := records.NewHTTPService(endpoint, options...)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func collectSections(ctx context.Context, template model.FormTemplate, valuesFile string) ([]model.SectionValues, error) {
	if valuesFile == "" {
		return tui.New().Collect(ctx, template, giftentry.RenderOptions{})
	}
	data, err := os.ReadFile(valuesFile)
	if err != nil {
		return nil, err
	}
	var sections []model.SectionValues
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode %s: %w", valuesFile, err)
	}
	return sections, nil
}
