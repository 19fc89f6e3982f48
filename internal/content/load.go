package content

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var embeddedSite []byte

// Default returns the dictionary compiled into the binary.
func Default() (*Site, error) {
	return Parse(embeddedSite)
}

// LoadFile reads a dictionary from path. An empty path means the embedded one.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dictionary.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if site.Brand == "" {
		site.Brand = "CodeBrain"
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// Validate checks what the page and the reveal groups rely on: every
// language present, counters and levels in range, and the same number of
// counters in each language because reveal groups are built by index.
func (s *Site) Validate() error {
	for _, lang := range Langs {
		d, ok := s.Langs[lang]
		if !ok || d == nil {
			return fmt.Errorf("content: missing language %q", lang)
		}
		for i, st := range d.About.Stats {
			if math.IsNaN(st.Value) || math.IsInf(st.Value, 0) || st.Value < 0 {
				return fmt.Errorf("content: %s about.stats[%d] value %v must be >= 0", lang, i, st.Value)
			}
		}
		for i, sk := range d.Skills.Items {
			if math.IsNaN(sk.Level) || sk.Level < 0 || sk.Level > 100 {
				return fmt.Errorf("content: %s skills[%d] level %v must be within 0..100", lang, i, sk.Level)
			}
		}
		seen := make(map[int]bool, len(d.Projects.Items))
		for i, p := range d.Projects.Items {
			if p.ID <= 0 || seen[p.ID] {
				return fmt.Errorf("content: %s projects[%d] needs a unique positive id, got %d", lang, i, p.ID)
			}
			seen[p.ID] = true
		}
		for i, p := range d.Shop.Items {
			if p.ID <= 0 {
				return fmt.Errorf("content: %s shop[%d] needs a positive id", lang, i)
			}
			if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > 5 {
				return fmt.Errorf("content: %s shop[%d] rating %v must be within 0..5", lang, i, p.Rating)
			}
		}
	}

	en, ar := s.Langs[English], s.Langs[Arabic]
	if len(en.About.Stats) != len(ar.About.Stats) {
		return fmt.Errorf("content: about.stats length differs between languages (%d vs %d)",
			len(en.About.Stats), len(ar.About.Stats))
	}
	if len(en.Skills.Items) != len(ar.Skills.Items) {
		return fmt.Errorf("content: skills length differs between languages (%d vs %d)",
			len(en.Skills.Items), len(ar.Skills.Items))
	}
	return nil
}
