package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"phprun/internal/storage"
)

// NoOutput is the panel text before a run has produced anything
const NoOutput = "No Output"

// Panel is the terminal output panel.
// In live mode every update is printed as it arrives; otherwise the
// text is held back and printed in one piece when the panel is shown.
type Panel struct {
	out    io.Writer
	store  *storage.PanelStore
	logger *log.Logger

	command string
	text    string
	final   bool
	stdout  bool
	live    bool
	visible bool
	shown   bool
	printed map[bool]int // bytes already printed per stream
}

// NewPanel creates a Panel writing to out and remembering its state in store
func NewPanel(out io.Writer, store *storage.PanelStore, logger *log.Logger) *Panel {
	visible, err := store.Visible()
	if err != nil {
		logger.Warn("could not read panel state", "err", err)
	}
	return &Panel{
		out:     out,
		store:   store,
		logger:  logger,
		text:    NoOutput,
		visible: visible,
		printed: map[bool]int{},
	}
}

// Visible reports whether the panel is open
func (p *Panel) Visible() bool {
	return p.visible
}

// Text returns the current panel content
func (p *Panel) Text() string {
	return p.text
}

// Reset clears the panel ahead of a new run and closes it when it was open
func (p *Panel) Reset() {
	p.text = NoOutput
	p.command = ""
	p.final = false
	p.shown = false
	p.printed = map[bool]int{}
	if p.visible {
		p.Hide()
	}
}

// Begin prepares the panel for command. With live set, the header is printed now
// and output follows as it streams in.
func (p *Panel) Begin(command string, live bool) {
	p.command = command
	p.text = ""
	p.live = live
	if live {
		p.printHeader()
		p.shown = true
		p.setVisible(true)
	}
}

// Update replaces the panel content with the accumulated text of one stream
func (p *Panel) Update(text, command string, final, stdout bool) {
	p.text = text
	p.command = command
	p.final = final
	p.stdout = stdout

	if !p.live {
		return
	}
	done := p.printed[stdout]
	if len(text) > done {
		fmt.Fprint(p.out, text[done:])
		p.printed[stdout] = len(text)
	}
}

// Show opens the panel, printing the held-back text when it was not streamed
func (p *Panel) Show() {
	if !p.shown {
		p.printHeader()
		fmt.Fprint(p.out, p.text)
		p.shown = true
	}
	if p.text != "" && !strings.HasSuffix(p.text, "\n") {
		fmt.Fprintln(p.out)
	}
	p.setVisible(true)
}

// Hide closes the panel
func (p *Panel) Hide() {
	p.setVisible(false)
}

// Save persists the current content so `phprun output show` can reopen it
func (p *Panel) Save(runID string, succeeded bool) {
	out := storage.PanelOutput{
		RunID:     runID,
		Command:   p.command,
		Text:      stripansi.Strip(p.text),
		Succeeded: succeeded,
		Final:     p.final,
	}
	if err := p.store.SetOutput(out); err != nil {
		p.logger.Warn("could not save panel output", "err", err)
	}
}

func (p *Panel) setVisible(visible bool) {
	if p.visible == visible {
		return
	}
	p.visible = visible
	if err := p.store.SetVisible(visible); err != nil {
		p.logger.Warn("could not save panel state", "err", err)
	}
}

func (p *Panel) printHeader() {
	fmt.Fprintf(p.out, "%s %s\n", color.CyanString("▶"), color.New(color.FgCyan, color.Bold).Sprint(p.command))
}
