package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
)

const usage = `usage: giftentry-cli <command> [flags]

commands:
  builder   choose and order batch header fields
  entry     fill in a gift entry form and save it
  preview   render a form template to HTML`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := loadConfig()
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "builder":
		err = runBuilder(ctx, cfg, logger, args)
	case "entry":
		err = runEntry(ctx, cfg, logger, args)
	case "preview":
		err = runPreview(ctx, cfg, logger, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", path)
	return nil
}
