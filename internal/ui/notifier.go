package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/fatih/color"
)

// maxDetailLines caps notification details; the full text stays in the panel
const maxDetailLines = 20

// Notifier prints transient one-off messages
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a Notifier writing to out
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Success prints a green notification
func (n *Notifier) Success(title, description, detail string) {
	n.print(color.New(color.FgGreen, color.Bold), "✓", title, description, detail)
}

// Error prints a red notification
func (n *Notifier) Error(title, description, detail string) {
	n.print(color.New(color.FgRed, color.Bold), "✗", title, description, detail)
}

// Info prints a cyan notification
func (n *Notifier) Info(title, description string) {
	n.print(color.New(color.FgCyan), "•", title, description, "")
}

func (n *Notifier) print(c *color.Color, icon, title, description, detail string) {
	c.Fprintf(n.out, "%s %s\n", icon, title)
	if description != "" {
		fmt.Fprintf(n.out, "  %s\n", color.CyanString(description))
	}
	if detail = strings.TrimSpace(stripansi.Strip(detail)); detail != "" {
		lines := strings.Split(detail, "\n")
		if len(lines) > maxDetailLines {
			hidden := len(lines) - maxDetailLines
			lines = append(lines[len(lines)-maxDetailLines:], color.HiBlackString("(%d earlier lines in the output panel)", hidden))
		}
		for _, line := range lines {
			fmt.Fprintf(n.out, "  %s\n", line)
		}
	}
}
