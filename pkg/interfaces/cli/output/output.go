package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/etd/pkg/application/dto"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/infrastructure/events"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/sheet"
	"github.com/vsinha/etd/pkg/infrastructure/repositories/xlsx"
)

// WorkbookFile is the file name of the xlsx output
const WorkbookFile = "Output_Stock_Management.xlsx"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Writer    io.Writer
}

// Generate creates output in the specified format
func Generate(result *dto.PlanningResult, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "xlsx":
		return generateXLSXOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanningResult, config Config) error {
	w := config.Writer
	fmt.Fprintf(w, "📊 ETD Results Summary\n")
	fmt.Fprintf(w, "======================\n\n")

	fmt.Fprintf(w, "Run: %s\n", result.RunID)
	fmt.Fprintf(w, "Today: %s\n", result.Parameters.Today.Format("2006-01-02"))
	fmt.Fprintf(w, "Purchase Orders: %d\n", len(result.FinalResults))
	fmt.Fprintf(w, "Scheduled: %d\n", result.Scheduled())
	fmt.Fprintf(w, "Material Shortages: %d\n", result.Shortages())
	fmt.Fprintf(w, "Excluded Rows: %d\n", len(result.Excluded))
	fmt.Fprintf(w, "Run Time: %v\n\n", result.Duration)

	if len(result.FinalResults) > 0 {
		fmt.Fprintf(w, "📋 Final ETD:\n")
		fmt.Fprintf(w, "%-15s %-10s %-10s %-12s %-12s %-12s %-22s %-22s %-12s\n",
			"PO", "Material", "Qty", "CHD", "Draft ETD", "2nd ETD", "1st Batch", "2nd Batch", "Final ETD")
		fmt.Fprintf(w, "%-15s %-10s %-10s %-12s %-12s %-12s %-22s %-22s %-12s\n",
			"---------------", "----------", "----------", "------------", "------------", "------------",
			"----------------------", "----------------------", "------------")

		for _, r := range result.FinalResults {
			fmt.Fprintf(w, "%-15s %-10s %-10s %-12s %-12s %-12s %-22s %-22s %-12s\n",
				r.Order.ID,
				r.Order.Material,
				r.Order.RequestedQty.String(),
				r.Order.CHD.Format("2006-01-02"),
				shortDate(r.DraftETD.String()),
				shortDate(r.SecondETD.String()),
				splitText(r.FirstSplit),
				splitText(r.SecondSplit),
				shortDate(r.FinalETD.String()))
		}
		fmt.Fprintln(w)
	}

	if len(result.RemainingStock) > 0 {
		fmt.Fprintf(w, "📦 Remaining Stock:\n")
		fmt.Fprintf(w, "%-10s %-20s %-12s %s\n", "Material", "CPT Name", "On Hand", "Incoming")
		fmt.Fprintf(w, "%-10s %-20s %-12s %s\n", "----------", "--------------------", "------------", "--------")
		for _, stock := range result.RemainingStock {
			fmt.Fprintf(w, "%-10s %-20s %-12s %s\n",
				stock.Material, stock.CPTName, stock.OnHand.String(), IncomingBatches(stock.Incoming))
		}
		fmt.Fprintln(w)
	}

	if len(result.Excluded) > 0 {
		fmt.Fprintf(w, "⚠️  Excluded Rows:\n")
		fmt.Fprintf(w, "%-16s %-6s %s\n", "Sheet", "Row", "Reason")
		fmt.Fprintf(w, "%-16s %-6s %s\n", "----------------", "------", "------")
		for _, row := range result.Excluded {
			fmt.Fprintf(w, "%-16s %-6d %s\n", row.Sheet, row.Row, row.Reason)
		}
		fmt.Fprintln(w)
	}

	if config.Verbose {
		fmt.Fprintf(w, "📝 Planning events recorded: %d\n", len(result.Events))
		for _, eventType := range events.PlanningEventTypes {
			if n := result.EventCounts[eventType]; n > 0 {
				fmt.Fprintf(w, "   %-24s %d\n", eventType, n)
			}
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanningResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Writer, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "etd_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes one CSV file per output sheet
func generateCSVOutput(result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, table := range Sheets(result) {
		filename := filepath.Join(config.OutputDir, csvFileName(table.Name))
		if err := writeTableCSV(table, filename); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", table.Name, err)
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(config.Writer, "  %s\n", filename)
		}
	}
	return nil
}

// generateXLSXOutput writes the output workbook
func generateXLSXOutput(result *dto.PlanningResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for xlsx format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, WorkbookFile)
	if err := xlsx.WriteWorkbook(filename, Sheets(result)); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Fprintf(config.Writer, "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}

func writeTableCSV(table *sheet.Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		return err
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return err
	}
	return file.Close()
}

// csvFileName turns "DRAFT ETD" into "draft_etd.csv"
func csvFileName(sheetName string) string {
	return strings.ReplaceAll(strings.ToLower(sheetName), " ", "_") + ".csv"
}

func splitText(split *entities.ProductionSplit) string {
	if split == nil {
		return "-"
	}
	return fmt.Sprintf("%s @ %s", split.Quantity.String(), split.Date.Format("2006-01-02"))
}

func shortDate(value string) string {
	if value == entities.UnavailableLabel {
		return "UNAVAILABLE"
	}
	return value
}
