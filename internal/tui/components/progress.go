package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var progressLabelStyle = lipgloss.NewStyle().Bold(true)

// ActionProgress shows how far through the reconcile plan a run is.
type ActionProgress struct {
	bar     progress.Model
	planned int
}

// NewActionProgress creates the component for a plan of the given size.
func NewActionProgress(planned int) ActionProgress {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 32
	return ActionProgress{bar: bar, planned: planned}
}

// View renders the bar for the number of recorded action results. An empty
// plan renders as complete.
func (p ActionProgress) View(recorded int) string {
	ratio := 1.0
	if p.planned > 0 {
		ratio = float64(recorded) / float64(p.planned)
		if ratio > 1 {
			ratio = 1
		}
	}
	label := progressLabelStyle.Render(fmt.Sprintf("%d/%d actions", recorded, p.planned))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
