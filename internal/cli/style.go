package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/meikuraledutech/workflow"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func noticeStyle(l workflow.Level) lipgloss.Style {
	switch l {
	case workflow.LevelSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case workflow.LevelWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	case workflow.LevelError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	default:
		return lipgloss.NewStyle()
	}
}
