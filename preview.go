package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/adel682/codebrain/internal/content"
	"github.com/adel682/codebrain/internal/reveal"
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	previewLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	previewValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22D3EE"))
	previewDoneStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
)

// terminalRegion is mounted for as long as the preview runs.
type terminalRegion struct{ ctx context.Context }

func (r terminalRegion) Mounted() bool { return r.ctx.Err() == nil }

// runPreview plays one section's reveal in a terminal. A terminal has no
// viewport to observe, so the trigger fails open and the animation starts
// straight away. Each frame overwrites the previous line.
func runPreview(ctx context.Context, w io.Writer, dict *content.Dictionary, sec revealSection, clock clockwork.Clock) error {
	items := sec.Items(dict)
	group, err := reveal.NewGroup(sec.Duration, sec.Steps, sec.Targets(dict)...)
	if err != nil {
		return fmt.Errorf("preview %s: %w", sec.Name, err)
	}
	trigger, err := reveal.NewTrigger(sec.Threshold)
	if err != nil {
		return fmt.Errorf("preview %s: %w", sec.Name, err)
	}
	defer trigger.Release()

	if !trigger.Attach(terminalRegion{ctx}, nil, func() { group.Start() }) {
		return ctx.Err()
	}

	_, _ = fmt.Fprintln(w, previewTitleStyle.Render(sec.Name))
	_, _ = fmt.Fprint(w, "\r"+renderFrame(items, group.Frame()))
	group.Drive(ctx, clock, func(f reveal.Frame) {
		_, _ = fmt.Fprint(w, "\r"+renderFrame(items, f))
	})
	_, _ = fmt.Fprintln(w)

	if !group.Done() {
		return ctx.Err()
	}
	_, _ = fmt.Fprintln(w, previewDoneStyle.Render(fmt.Sprintf("done in %d ticks", group.Ticks())))
	return nil
}

func renderFrame(items []revealItem, f reveal.Frame) string {
	parts := make([]string, len(items))
	for i, it := range items {
		value := fmt.Sprintf("%d%s", f.Values[i], it.Suffix)
		if f.Done[i] {
			value = previewDoneStyle.Render(value)
		} else {
			value = previewValueStyle.Render(value)
		}
		parts[i] = previewLabelStyle.Render(it.Label) + " " + value
	}
	return strings.Join(parts, "  ")
}
