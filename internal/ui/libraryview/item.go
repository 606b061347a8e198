package libraryview

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/theme"
)

// StalenessThreshold defines how old FetchedAt can be before a cached
// job snapshot is considered stale. Defaults to 5 minutes.
var StalenessThreshold = 5 * time.Minute

// VideoItem wraps a model.VideoJob so it can be used in a bubbles/list.
type VideoItem struct {
	Job model.VideoJob
}

// FilterValue returns the string used for fuzzy filtering.
func (i VideoItem) FilterValue() string { return i.Job.Title }

// Title returns the job title for the list.
func (i VideoItem) Title() string { return i.Job.Title }

// Description returns a short summary line for the list.
func (i VideoItem) Description() string {
	return fmt.Sprintf("%s | %s", i.Job.Status, relativeTime(i.Job.UpdatedAt))
}

// VideoDelegate implements list.ItemDelegate for rendering job rows.
type VideoDelegate struct{}

// Height returns the number of lines each item takes.
func (d VideoDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d VideoDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d VideoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single job row.
func (d VideoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	vi, ok := item.(VideoItem)
	if !ok {
		return
	}

	job := vi.Job
	isSelected := index == m.Index()

	statusBadge := theme.StatusStyle(job.Status).Render(job.Status)

	progressStr := ""
	if job.Status == model.StatusProcessing && job.Progress > 0 {
		progressStr = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(fmt.Sprintf(" %.0f%%", job.Progress))
	}

	errStr := ""
	if job.Status == model.StatusFailed && job.ErrorMessage != "" {
		errStr = lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(" " + job.ErrorMessage)
	}

	staleIndicator := ""
	if time.Since(job.FetchedAt) > StalenessThreshold {
		staleIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ●")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(job.UpdatedAt))

	line := fmt.Sprintf(
		"%s %s%s%s%s  %s",
		statusBadge, job.Title, progressStr, errStr, staleIndicator, timeStr,
	)

	if job.Terminal() && job.Status == model.StatusFailed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
