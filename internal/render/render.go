// Package render formats service results for the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	numericStyle  = cellStyle.Align(lipgloss.Right)
	positiveStyle = lipgloss.NewStyle().Foreground(colorGreen)
	negativeStyle = lipgloss.NewStyle().Foreground(colorRed)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// Table is a bordered table. Every column after the first is right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func Title(s string) string {
	return titleStyle.Render(s)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}

func (t Table) String() string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numericStyle
			}
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString(Muted("  nothing recorded"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(tbl.String())
	b.WriteString("\n")
	return b.String()
}

// KeyValues renders label/value pairs as a two column table without headers.
func KeyValues(title string, pairs [][2]string) string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	return Table{Title: title, Rows: rows}.String()
}

// Money formats d with two decimals, suffixed with the currency when one is known.
func Money(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	if currency != "" {
		s += " " + currency
	}
	return s
}

// Signed colours a balance green when non-negative and red otherwise.
func Signed(d decimal.Decimal, currency string) string {
	if d.IsNegative() {
		return negativeStyle.Render(Money(d, currency))
	}
	return positiveStyle.Render(Money(d, currency))
}

func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// Bar draws a fixed width bar for a percentage, clamped to [0, 100].
func Bar(percent decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}
	p := percent
	if p.IsNegative() {
		p = decimal.Zero
	}
	if p.GreaterThan(decimal.NewFromInt(100)) {
		p = decimal.NewFromInt(100)
	}
	filled := int(p.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).IntPart())
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
