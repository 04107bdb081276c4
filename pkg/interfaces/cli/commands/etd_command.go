package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/application/services/orchestration"
	"github.com/vsinha/etd/pkg/config"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/etd/pkg/interfaces/cli/output"
	"github.com/vsinha/etd/pkg/logger"
)

// Config holds configuration for the ETD command
type Config struct {
	ScenarioDir string
	Workbook    string
	OutputDir   string
	Format      string
	EnvFile     string
	Verbose     bool
	Help        bool
	Out         io.Writer
	LogOutput   io.Writer
}

// ETDCommand loads planning input, runs the three planning passes and
// renders the result
type ETDCommand struct {
	config Config
	now    func() time.Time
}

// NewETDCommand creates a new ETD command with the given configuration
func NewETDCommand(config Config) *ETDCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.LogOutput == nil {
		config.LogOutput = os.Stderr
	}
	return &ETDCommand{
		config: config,
		now:    time.Now,
	}
}

// Execute runs the ETD command
func (c *ETDCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(c.config.EnvFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if c.config.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	log := logger.New(logger.Options{
		ServiceName: "etd",
		Level:       level,
		Format:      cfg.LogFormat,
		Output:      c.config.LogOutput,
	})

	params, err := cfg.Parameters(c.now())
	if err != nil {
		return fmt.Errorf("failed to resolve planning parameters: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
	}

	input, err := c.loadInput(log)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "✅ Data loaded successfully:\n")
		fmt.Fprintf(c.config.Out, "  Stock Rows: %d\n", len(input.StockRows))
		fmt.Fprintf(c.config.Out, "  Purchase Orders: %d\n", len(input.PurchaseOrders))
		fmt.Fprintf(c.config.Out, "  Lot Statuses: %d\n", len(input.LotStatuses))
		fmt.Fprintf(c.config.Out, "  Capacity Days: %d\n", len(input.CapacityDays))
		fmt.Fprintln(c.config.Out)
	}

	orchestrator, err := orchestration.NewPlanningOrchestrator(params, log)
	if err != nil {
		return fmt.Errorf("invalid planning parameters: %w", err)
	}

	result, err := orchestrator.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("ETD run failed: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.config.Out,
	})
}

func (c *ETDCommand) loadInput(log *logger.Logger) (*dto.PlanningInput, error) {
	if c.config.Workbook != "" {
		if c.config.Verbose {
			fmt.Fprintln(c.config.Out, "📂 Loading data from workbook...")
		}
		input, err := xlsx.NewLoader(log).Load(c.config.Workbook)
		if err != nil {
			return nil, fmt.Errorf("error loading workbook: %w", err)
		}
		return input, nil
	}

	if c.config.Verbose {
		fmt.Fprintln(c.config.Out, "📂 Loading data from CSV files...")
	}
	input, err := csv.NewLoader(log).LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return nil, fmt.Errorf("error loading scenario: %w", err)
	}
	return input, nil
}

// validateInputs validates the command configuration
func (c *ETDCommand) validateInputs() error {
	if (c.config.ScenarioDir == "") == (c.config.Workbook == "") {
		return fmt.Errorf("must specify exactly one of -scenario directory or -workbook file")
	}
	switch c.config.Format {
	case "text", "json", "csv", "xlsx":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if (c.config.Format == "csv" || c.config.Format == "xlsx") && c.config.OutputDir == "" {
		return fmt.Errorf("-output directory required for %s format", c.config.Format)
	}
	return nil
}

// printHeader prints the command header information
func (c *ETDCommand) printHeader() {
	fmt.Fprintf(c.config.Out, "🚀 ETD Planning CLI\n")
	if c.config.Workbook != "" {
		fmt.Fprintf(c.config.Out, "Input workbook: %s\n", c.config.Workbook)
	} else {
		fmt.Fprintf(c.config.Out, "Scenario directory: %s\n", c.config.ScenarioDir)
	}
	fmt.Fprintf(c.config.Out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.config.Out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.config.Out)
}

// showHelp displays the help message
func (c *ETDCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `ETD Planning CLI - Fabric allocation, quality gating and capacity scheduling

USAGE:
    etd -workbook <file>                   # Use an input workbook
    etd -scenario <directory>              # Use scenario directory with CSV files

OPTIONS:
    -workbook <file>    Path to workbook with Stock, PO, 1ST LOT STATUS and Capacity Status sheets
    -scenario <dir>     Path to scenario directory containing CSV files
    -output <dir>       Output directory for results (required for csv and xlsx)
    -format <fmt>       Output format: text, json, csv, xlsx (default: text)
    -env <file>         Optional .env file with ETD_* settings (default: .env)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── stock.csv            # DSM Code, Greige ETA, Greige Incoming
    ├── purchase_orders.csv  # PO, DSM Code, CHD, Quantity request, Forecasted, ...
    ├── lot_status.csv       # DSM Code, COLOR, STATUS, DUE DATE
    └── capacity.csv         # CAPACITY DATE, CAPACITY REMAIN

ENVIRONMENT:
    ETD_TODAY                Planning date YYYY-MM-DD (default: current date)
    ETD_LEAD_TIME_DAYS       Production to ship lag (default: 40)
    ETD_CAPACITY_TOLERANCE   Overbooking allowance (default: 2000)
    ETD_MIN_CAPACITY_REMAIN  Overbooking floor (default: -2000)
    ETD_SPLIT_THRESHOLD      Minimum quantity for a two-day split (default: 1000)
    ETD_LOOKBACK_DAYS        Days before the target to start searching (default: 30)
    ETD_HORIZON_DAYS         Search horizon in days (default: 365)
    ETD_FAR_FUTURE_DATE      Sentinel date (default: 2200-12-31)
    ETD_LOG_LEVEL            Log level (default: info)
    ETD_LOG_FORMAT           console or json (default: console)

EXAMPLES:
    etd -workbook "PO - Request.xlsx" -format xlsx -output ./out
    etd -scenario ./scenarios/basic -format json
`)
}
