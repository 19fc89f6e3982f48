package main

import (
	"time"

	"github.com/adel682/codebrain/internal/config"
	"github.com/adel682/codebrain/internal/content"
)

// revealSection describes a page section whose numbers count up once it
// scrolls into view.
type revealSection struct {
	Name      string
	Threshold float64
	Duration  time.Duration
	Steps     int
}

// revealItem is one counter or bar in a section, read from a language's dictionary.
type revealItem struct {
	Label  string
	Target float64
	Suffix string
}

func (rs revealSection) Items(d *content.Dictionary) []revealItem {
	switch rs.Name {
	case "about":
		items := make([]revealItem, len(d.About.Stats))
		for i, st := range d.About.Stats {
			items[i] = revealItem{Label: st.Label, Target: st.Value, Suffix: st.Suffix}
		}
		return items
	case "skills":
		items := make([]revealItem, len(d.Skills.Items))
		for i, sk := range d.Skills.Items {
			items[i] = revealItem{Label: sk.Title, Target: sk.Level, Suffix: "%"}
		}
		return items
	}
	return nil
}

func (rs revealSection) Targets(d *content.Dictionary) []float64 {
	items := rs.Items(d)
	targets := make([]float64, len(items))
	for i, it := range items {
		targets[i] = it.Target
	}
	return targets
}

func revealSections(cfg config.RevealConfig) map[string]revealSection {
	return map[string]revealSection{
		"about": {
			Name:      "about",
			Threshold: cfg.AboutThreshold,
			Duration:  cfg.AboutDuration,
			Steps:     cfg.Steps,
		},
		"skills": {
			Name:      "skills",
			Threshold: cfg.SkillsThreshold,
			Duration:  cfg.SkillsDuration,
			Steps:     cfg.Steps,
		},
	}
}
