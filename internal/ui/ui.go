// Package ui renders machine activity for terminals.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/comalice/vendingfsm"
)

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	red    = lipgloss.Color("204")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("243")
	faint  = lipgloss.Color("238")
)

var (
	AccentStyle  = lipgloss.NewStyle().Foreground(purple)
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	ErrorStyle   = lipgloss.NewStyle().Foreground(red)
	WarnStyle    = lipgloss.NewStyle().Foreground(yellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(dim)
)

func Accent(s string) string { return AccentStyle.Render(s) }
func Muted(s string) string  { return MutedStyle.Render(s) }

func ErrorMsg(format string, a ...any) string {
	return ErrorStyle.Render("✗") + " " + fmt.Sprintf(format, a...)
}

func InfoMsg(format string, a ...any) string {
	return AccentStyle.Render("●") + " " + fmt.Sprintf(format, a...)
}

// SetNoColor switches the default renderer between plain ASCII and the
// profile detected from the terminal.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// stateStyle picks a color per state variant.
func stateStyle(name string) lipgloss.Style {
	switch name {
	case vendingfsm.HasCoinID.String():
		return WarnStyle.Bold(true)
	case vendingfsm.DispensingID.String():
		return SuccessStyle.Bold(true)
	case vendingfsm.SoldOutID.String():
		return ErrorStyle.Bold(true)
	default:
		return AccentStyle.Bold(true)
	}
}

// TerminalObserver prints machine notifications as styled lines. Ledger
// updates are only printed when verbose is set; status changes and log
// messages are always printed.
type TerminalObserver struct {
	mu       sync.Mutex
	w        io.Writer
	currency string
	verbose  bool
}

func NewTerminalObserver(w io.Writer, currency string, verbose bool) *TerminalObserver {
	return &TerminalObserver{w: w, currency: currency, verbose: verbose}
}

func (o *TerminalObserver) UpdateStatus(name string) {
	o.println(Muted("state") + " " + stateStyle(name).Render(name))
}

func (o *TerminalObserver) UpdateStock(count int) {
	if o.verbose {
		o.println(Muted("stock") + " " + strconv.Itoa(count))
	}
}

func (o *TerminalObserver) UpdateMoney(amount int) {
	if o.verbose {
		o.println(Muted("balance") + " " + vendingfsm.FormatAmount(amount, o.currency))
	}
}

func (o *TerminalObserver) LogMessage(text string) {
	o.println(AccentStyle.Render(">") + " " + text)
}

func (o *TerminalObserver) println(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintln(o.w, line)
}

// Table renders a styled table with rounded borders.
func Table(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddStyle := cellStyle.Foreground(dim)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return cellStyle
			default:
				return oddStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

// StatusTable renders a snapshot as a one-row table.
func StatusTable(s vendingfsm.Snapshot) string {
	return Table(
		[]string{"MACHINE", "STATE", "BALANCE", "STOCK", "SOLD", "PRICE"},
		[][]string{{
			s.MachineID,
			s.State,
			vendingfsm.FormatAmount(s.Balance, s.Currency),
			strconv.Itoa(s.Stock),
			strconv.Itoa(s.Sales),
			vendingfsm.FormatAmount(s.Price, s.Currency),
		}},
	)
}

// TransitionTable renders the transition table.
func TransitionTable(transitions []vendingfsm.Transition) string {
	rows := make([][]string, 0, len(transitions))
	for _, t := range transitions {
		guard := t.Guard
		if guard == "" {
			guard = "-"
		}
		rows = append(rows, []string{t.From.String(), string(t.Event), guard, t.To.String()})
	}
	return Table([]string{"FROM", "EVENT", "GUARD", "TO"}, rows)
}
