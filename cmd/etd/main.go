package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vsinha/etd/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		workbook    = flag.String("workbook", "", "Path to input workbook (.xlsx)")
		scenarioDir = flag.String("scenario", "", "Path to scenario directory containing CSV files")
		outputDir   = flag.String("output", "", "Output directory for results (required for csv, xlsx)")
		format      = flag.String("format", "text", "Output format: text, json, csv, xlsx")
		envFile     = flag.String("env", ".env", "Optional .env file with ETD_* settings")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir: *scenarioDir,
		Workbook:    *workbook,
		OutputDir:   *outputDir,
		Format:      *format,
		EnvFile:     *envFile,
		Verbose:     *verbose,
		Help:        *help,
	}

	// Create and execute command
	cmd := commands.NewETDCommand(config)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
