package engine

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aaronsb/think-strategies/internal/model"
)

var (
	thoughtPrefixStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	revisionPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	branchPrefixStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	strategyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	stageStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	numberingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	thoughtBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderThought renders an accepted thought as a bordered block for the
// server's stderr log, mirroring the routing state it was accepted under.
func renderThought(t *model.Thought) string {
	var prefix, context string
	switch {
	case t.IsRevision:
		prefix = revisionPrefixStyle.Render("Revision")
		context = fmt.Sprintf(" (revising thought %d)", t.RevisesThought)
	case t.BranchFromThought > 0:
		prefix = branchPrefixStyle.Render("Branch")
		context = fmt.Sprintf(" (from thought A%d, id %s)", t.BranchFromThought, t.BranchID)
	default:
		prefix = thoughtPrefixStyle.Render("Thought")
	}

	header := fmt.Sprintf("%s %d/%d%s %s %s %s",
		prefix,
		t.ThoughtNumber, t.TotalThoughts,
		context,
		numberingStyle.Render(fmt.Sprintf("[A%d|S%d]", t.AbsoluteNumber, t.SequenceNumber)),
		strategyStyle.Render(fmt.Sprintf("[%s]", t.Strategy)),
		stageStyle.Render(fmt.Sprintf("[stage: %s]", t.CurrentStage)),
	)

	lines := []string{header, "", t.Thought}
	if t.NextThoughtNeeded {
		lines = append(lines, "", hintStyle.Render("Continue with your next thought step without stopping"))
	}
	return thoughtBoxStyle.Render(strings.Join(lines, "\n"))
}
