package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Position represents a position in a source file
type Position struct {
	File   string
	Line   int
	Column int // 0 when only the line is known
}

// Diagnostic represents a structured validation message with position information
type Diagnostic struct {
	Position Position
	Type     string // "error", "warning", "info"
	Message  string
	Label    string   // zone/area the message belongs to
	Context  []string // Source lines for context
	// ContextStart is the line number of Context[0]. When zero the context is
	// assumed to be centered on Position.Line.
	ContextStart int
	Hints        []string // Suggested remedies, one per line
}

// Styles for the different message tags
var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	infoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	contextLineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F8F8F2"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))
)

// isTTY checks if stdout is a terminal
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// applyStyle conditionally applies styling based on TTY status
func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// ToRelativePath converts an absolute path to a relative path from the current working directory
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	return relPath
}

// tagFor returns the bracketed tag and style for a diagnostic type
func tagFor(kind string) (string, lipgloss.Style) {
	switch kind {
	case "warning":
		return "[WARNING]", warningStyle
	case "info":
		return "[INFO]", infoStyle
	default:
		return "[ERROR]", errorStyle
	}
}

// FormatError formats a Diagnostic with Rust-like rendering:
//
//	[ERROR] zones.json:12: Missing required field 'radius' in spawn point 'Alpha > SpawnPoint_1'
//	  --> Alpha > SpawnPoint_1
//	11 |         {
//	12 |             "position": "1 2 3",
//	   = fix: Add: "radius": 50
func FormatError(d Diagnostic) string {
	var output strings.Builder

	tag, typeStyle := tagFor(d.Type)
	output.WriteString(applyStyle(typeStyle, tag))
	output.WriteString(" ")

	// IDE-parseable location: file:line[:column]:
	if d.Position.File != "" {
		location := ToRelativePath(d.Position.File)
		if d.Position.Line > 0 {
			location = fmt.Sprintf("%s:%d", location, d.Position.Line)
			if d.Position.Column > 0 {
				location = fmt.Sprintf("%s:%d", location, d.Position.Column)
			}
		}
		output.WriteString(applyStyle(filePathStyle, location+":"))
		output.WriteString(" ")
	} else if d.Position.Line > 0 {
		output.WriteString(applyStyle(filePathStyle, fmt.Sprintf("line %d:", d.Position.Line)))
		output.WriteString(" ")
	}

	output.WriteString(d.Message)
	output.WriteString("\n")

	if d.Label != "" {
		output.WriteString("  --> ")
		output.WriteString(applyStyle(labelStyle, d.Label))
		output.WriteString("\n")
	}

	if len(d.Context) > 0 && d.Position.Line > 0 {
		output.WriteString(renderContext(d))
	}

	for _, hint := range d.Hints {
		output.WriteString(applyStyle(hintStyle, "  = fix: "))
		output.WriteString(hint)
		output.WriteString("\n")
	}

	return output.String()
}

// renderContext renders source context with line numbers and highlighting
func renderContext(d Diagnostic) string {
	var output strings.Builder

	first := d.ContextStart
	if first == 0 {
		first = d.Position.Line - len(d.Context)/2
	}
	lineNumWidth := len(fmt.Sprintf("%d", first+len(d.Context)-1))

	for i, line := range d.Context {
		lineNum := first + i
		if lineNum < 1 {
			continue
		}

		output.WriteString(applyStyle(lineNumberStyle, fmt.Sprintf("%*d", lineNumWidth, lineNum)))
		output.WriteString(" | ")

		if lineNum != d.Position.Line {
			output.WriteString(applyStyle(contextLineStyle, line))
			output.WriteString("\n")
			continue
		}

		if d.Position.Column > 0 && d.Position.Column <= len(line) {
			before := line[:d.Position.Column-1]
			errorChar := string(line[d.Position.Column-1])
			after := line[d.Position.Column:]

			output.WriteString(applyStyle(contextLineStyle, before))
			output.WriteString(applyStyle(highlightStyle, errorChar))
			output.WriteString(applyStyle(contextLineStyle, after))
			output.WriteString("\n")

			padding := strings.Repeat(" ", lineNumWidth+3+d.Position.Column-1)
			output.WriteString(padding)
			output.WriteString(applyStyle(errorStyle, "^"))
			output.WriteString("\n")
		} else {
			output.WriteString(applyStyle(highlightStyle, line))
			output.WriteString("\n")
		}
	}

	return output.String()
}

// SourceContext returns up to radius lines on each side of line (1-based) and the
// line number of the first returned line.
func SourceContext(source string, line, radius int) ([]string, int) {
	if line < 1 || source == "" {
		return nil, 0
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return nil, 0
	}

	start := max(1, line-radius)
	end := min(len(lines), line+radius)

	context := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		context = append(context, strings.TrimRight(lines[i-1], "\r"))
	}
	return context, start
}

// FormatSuccessMessage formats a success message with styling
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "[SUCCESS] ") + message
}

// FormatInfoMessage formats an informational message
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "[INFO] ") + message
}

// FormatWarningMessage formats a warning message
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "[WARNING] ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output)
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "[ERROR] ") + message
}

// FormatVerboseMessage formats verbose debugging output
func FormatVerboseMessage(message string) string {
	verboseStyle := lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#6272A4"))

	return applyStyle(verboseStyle, "[DEBUG] ") + message
}

// FormatLocationMessage formats a file/directory location message
func FormatLocationMessage(message string) string {
	locationStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFB86C"))

	return applyStyle(locationStyle, "[FILE] ") + message
}

// FormatListItem formats an item in a list
func FormatListItem(item string) string {
	itemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F8F8F2"))

	return applyStyle(itemStyle, "  - "+item)
}

// Table rendering styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9")).
				Background(lipgloss.Color("#44475A"))

	tableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2"))

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6272A4"))

	tableSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#44475A"))
)

// TableConfig represents configuration for table rendering
type TableConfig struct {
	Headers   []string
	Rows      [][]string
	Title     string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a formatted table using lipgloss
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	var output strings.Builder

	if config.Title != "" {
		output.WriteString(applyStyle(successStyle, config.Title))
		output.WriteString("\n")
	}

	colWidths := make([]int, len(config.Headers))
	for i, header := range config.Headers {
		colWidths[i] = len(header)
	}

	allRows := config.Rows
	if config.ShowTotal && len(config.TotalRow) > 0 {
		allRows = append(allRows, config.TotalRow)
	}
	for _, row := range allRows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	output.WriteString(renderTableRow(config.Headers, colWidths, tableHeaderStyle))
	output.WriteString("\n")

	separatorChars := make([]string, len(config.Headers))
	for i, width := range colWidths {
		separatorChars[i] = strings.Repeat("-", width)
	}
	separator := renderTableRow(separatorChars, colWidths, tableSeparatorStyle)
	output.WriteString(separator)
	output.WriteString("\n")

	for _, row := range config.Rows {
		output.WriteString(renderTableRow(row, colWidths, tableCellStyle))
		output.WriteString("\n")
	}

	if config.ShowTotal && len(config.TotalRow) > 0 {
		output.WriteString(separator)
		output.WriteString("\n")
		output.WriteString(renderTableRow(config.TotalRow, colWidths, successStyle))
		output.WriteString("\n")
	}

	return output.String()
}

// renderTableRow renders a single table row with proper spacing
func renderTableRow(cells []string, colWidths []int, style lipgloss.Style) string {
	var row strings.Builder

	for i, cell := range cells {
		if i >= len(colWidths) {
			break
		}
		row.WriteString(applyStyle(style, fmt.Sprintf("%-*s", colWidths[i], cell)))
		if i < len(cells)-1 {
			row.WriteString(applyStyle(tableBorderStyle, " | "))
		}
	}

	return row.String()
}
