package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm shows a warning box with the given lines and asks a yes/no
// question on out, reading the answer from in. Anything other than "y" or
// "yes" is a no.
func (p *Printer) Confirm(title string, warnings []string, question string, in io.Reader) bool {
	var lines []string
	lines = append(lines, "", WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)), "")
	for _, w := range warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+w))
	}
	lines = append(lines, "")

	p.Println(resultBoxStyle(p.width, WarningColor).Render(strings.Join(lines, "\n")))
	p.Print(WarningTitleStyle.Render(question + " [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		p.Newline()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
		return false
	}
}
