package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// DeleteItem represents one branch in the deletion progress display
type DeleteItem struct {
	BranchName string
	Pivot      string
	Reason     string // "duplicate" or "contained"
	Status     string // "pending", "deleting", "done", "error"
	Error      error
}

// DeleteTUIModel is the bubbletea model for deletion progress
type DeleteTUIModel struct {
	items      []DeleteItem
	currentIdx int
	spinner    spinner.Model
	done       bool
	quitting   bool
	deleteFunc func(idx int) tea.Cmd
	styles     deleteStyles
}

type deleteStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	branchStyle  lipgloss.Style
	dimStyle     lipgloss.Style
}

// DeleteResultMsg is sent when a single deletion completes
type DeleteResultMsg struct {
	Idx   int
	Error error
}

// NewDeleteTUIModel creates a new deletion progress model
func NewDeleteTUIModel(items []DeleteItem, deleteFunc func(idx int) tea.Cmd) DeleteTUIModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DeleteTUIModel{
		items:      items,
		currentIdx: 0,
		spinner:    s,
		deleteFunc: deleteFunc,
		styles: deleteStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			branchStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m DeleteTUIModel) Init() tea.Cmd {
	// Start spinner and first deletion
	if len(m.items) > 0 {
		m.items[0].Status = "deleting"
		return tea.Batch(m.spinner.Tick, m.deleteFunc(0))
	}
	return nil
}

func (m DeleteTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DeleteResultMsg:
		if msg.Idx < len(m.items) {
			if msg.Error != nil {
				m.items[msg.Idx].Status = "error"
				m.items[msg.Idx].Error = msg.Error
			} else {
				m.items[msg.Idx].Status = "done"
			}
		}

		// A failed delete means the plan is no longer trustworthy, stop here
		if msg.Error != nil {
			m.done = true
			return m, tea.Quit
		}

		m.currentIdx++
		if m.currentIdx < len(m.items) {
			m.items[m.currentIdx].Status = "deleting"
			return m, tea.Batch(m.spinner.Tick, m.deleteFunc(m.currentIdx))
		}

		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m DeleteTUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, item := range m.items {
		var icon string
		var status string

		switch item.Status {
		case "pending":
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		case "deleting":
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("Deleting...")
		case "done":
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render("deleted")
		case "error":
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("refused")
		}

		branchName := m.styles.branchStyle.Render(item.BranchName)
		line := fmt.Sprintf("  %s %s %s", icon, branchName, status)

		if item.Pivot != "" && item.Status != "error" {
			line += " " + m.styles.dimStyle.Render(fmt.Sprintf("(%s, kept in %s)", item.Reason, item.Pivot))
		}
		if item.Status == "error" && item.Error != nil {
			line += " " + m.styles.errorStyle.Render(item.Error.Error())
		}

		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if m.done {
		deleted := 0
		failed := 0
		for _, item := range m.items {
			switch item.Status {
			case "done":
				deleted++
			case "error":
				failed++
			}
		}
		b.WriteString("\n")
		if failed > 0 {
			b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("Deleted: %d, Refused: %d", deleted, failed)))
		} else {
			b.WriteString(m.styles.doneStyle.Render(fmt.Sprintf("✓ Deleted %d branches", deleted)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	// First check if stdin/stdout are terminals
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	// Also try to open /dev/tty to verify it's actually available
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// RunDeleteTUI runs the deletion progress TUI and returns when complete
func RunDeleteTUI(items []DeleteItem, deleteFunc func(idx int) tea.Cmd) error {
	m := NewDeleteTUIModel(items, deleteFunc)
	// Use WithInput/WithOutput to avoid TTY requirement in non-interactive environments
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}
