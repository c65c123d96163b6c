package output

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/connectsphere/cli/pkg/config"
	"github.com/fatih/color"
	json "github.com/json-iterator/go"
)

var codec = json.ConfigCompatibleWithStandardLibrary

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

var (
	mu  sync.RWMutex
	out io.Writer = color.Output
)

// SetOutput redirects all printing, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Writer returns the current destination
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	format := config.GetString("output.format")
	switch format {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// IsJSON reports whether machine-readable output was requested
func IsJSON() bool {
	return GetOutputFormat() == FormatJSON
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Print outputs data in the configured format with optional title
func Print(title string, data interface{}) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(title, data)
	default:
		// Table format doesn't make sense for generic objects
		return printText(title, data)
	}
}

// PrintList outputs a list in the configured format. In table mode items
// should be [][]string rows matching columns.
func PrintList(title string, items interface{}, columns []string) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(title, items)
	case FormatTable:
		if rows, ok := items.([][]string); ok {
			printTable(columns, rows)
			return nil
		}
		return printJSON(title, items)
	default:
		return printText(title, items)
	}
}

// PrintRecord outputs a single record in the configured format. Keys are
// printed in sorted order.
func PrintRecord(title string, record map[string]interface{}) error {
	switch GetOutputFormat() {
	case FormatJSON:
		return printJSON(title, record)
	case FormatTable:
		rows := make([][]string, 0, len(record))
		for _, k := range sortedKeys(record) {
			rows = append(rows, []string{k, fmt.Sprintf("%v", record[k])})
		}
		printTable([]string{"Field", "Value"}, rows)
		return nil
	default:
		return printRecordText(title, record)
	}
}

// PrintTable prints rows under bold headers regardless of format
func PrintTable(headers []string, rows [][]string) {
	printTable(headers, rows)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(Writer(), msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(Writer(), "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(Writer(), msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(Writer(), "Warning: "+msg+"\n", args...)
}

// Printf writes plain text to the current destination
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(Writer(), format, args...)
}

// Helper functions

func printJSON(title string, data interface{}) error {
	if title != "" {
		data = map[string]interface{}{title: data}
	}
	encoded, err := codec.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(Writer(), string(encoded))
	return nil
}

func printText(title string, data interface{}) error {
	w := Writer()
	if title != "" {
		fmt.Fprintf(w, "%s:\n", title)
	}
	pretty, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, pretty)
	return nil
}

func printRecordText(title string, record map[string]interface{}) error {
	w := Writer()
	if title != "" {
		fmt.Fprintf(w, "%s:\n", title)
	}
	bold := color.New(color.Bold)
	for _, key := range sortedKeys(record) {
		bold.Fprint(w, key+": ")
		fmt.Fprintf(w, "%v\n", record[key])
	}
	return nil
}

func printTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(Writer(), 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	for i, h := range headers {
		bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i < len(row)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

func sortedKeys(record map[string]interface{}) []string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatAsJSON converts data to a compact JSON string
func FormatAsJSON(data interface{}) (string, error) {
	encoded, err := codec.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// FormatAsPrettyJSON converts data to an indented JSON string
func FormatAsPrettyJSON(data interface{}) (string, error) {
	encoded, err := codec.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
