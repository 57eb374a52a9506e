package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config is read from the environment after any .env file is applied.
type config struct {
	TemplatesDir    string
	TemplatesURL    string
	TemplateName    string
	Catalog         string
	RecordsEndpoint string
	RecordsToken    string
	RecordTypeID    string
	LogLevel        string
}

var envPaths = []string{".env", "../.env", "../../.env"}

func loadConfig() config {
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}
	return config{
		TemplatesDir:    os.Getenv("GIFTENTRY_TEMPLATES_DIR"),
		TemplatesURL:    os.Getenv("GIFTENTRY_TEMPLATES_URL"),
		TemplateName:    os.Getenv("GIFTENTRY_TEMPLATE_NAME"),
		Catalog:         os.Getenv("GIFTENTRY_CATALOG"),
		RecordsEndpoint: os.Getenv("GIFTENTRY_RECORDS_ENDPOINT"),
		RecordsToken:    os.Getenv("GIFTENTRY_RECORDS_TOKEN"),
		RecordTypeID:    os.Getenv("GIFTENTRY_RECORD_TYPE_ID"),
		LogLevel:        strings.ToLower(strings.TrimSpace(os.Getenv("GIFTENTRY_LOG_LEVEL"))),
	}
}

// templateLocation prefers the remote service when both are configured.
func (c config) templateLocation() string {
	if c.TemplatesURL != "" {
		return c.TemplatesURL
	}
	return c.TemplatesDir
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	// Prompts share stdout.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
