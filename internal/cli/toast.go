package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// Toaster prints workflow notifications and navigation targets. It also
// remembers the last navigation so commands know where the form ended up.
type Toaster struct {
	out      io.Writer
	LastPath string
}

func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

func (t *Toaster) Success(msg string) {
	fmt.Fprintln(t.out, successStyle.Render("✓ "+msg))
}

func (t *Toaster) Error(msg string) {
	fmt.Fprintln(t.out, errorStyle.Render("✗ "+msg))
}

func (t *Toaster) Navigate(path string) {
	t.LastPath = path
	fmt.Fprintln(t.out, mutedStyle.Render("→ "+path))
}
