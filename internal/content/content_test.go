package content

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func mustDefault(t *testing.T) *Site {
	t.Helper()
	site, err := Default()
	if err != nil {
		t.Fatalf("load embedded content: %v", err)
	}
	return site
}

func TestDefaultContentIsComplete(t *testing.T) {
	t.Parallel()
	site := mustDefault(t)
	if site.Brand != "CodeBrain" {
		t.Fatalf("brand = %q", site.Brand)
	}
	for _, lang := range Langs {
		d := site.Dict(lang)
		if len(d.Nav) != 6 {
			t.Fatalf("%s: %d nav items, want 6", lang, len(d.Nav))
		}
		if got := len(d.About.Stats); got != 4 {
			t.Fatalf("%s: %d stats, want 4", lang, got)
		}
		if got := len(d.Skills.Items); got != 6 {
			t.Fatalf("%s: %d skills, want 6", lang, got)
		}
		if len(d.Projects.Items) != 3 || len(d.Shop.Items) != 3 || len(d.Experience.Entries) != 3 {
			t.Fatalf("%s: unexpected section sizes", lang)
		}
		if d.Contact.Success == "" || d.Contact.Error == "" {
			t.Fatalf("%s: contact messages missing", lang)
		}
	}

	values := []int{}
	for _, st := range site.Dict(English).About.Stats {
		values = append(values, st.Final())
	}
	if want := []int{50, 5, 99, 24}; !equalInts(values, want) {
		t.Fatalf("stat values = %v, want %v", values, want)
	}
	if got := site.Dict(Arabic).About.Title; got != "حولي" {
		t.Fatalf("arabic about title = %q", got)
	}
}

func TestDictFallsBackToEnglish(t *testing.T) {
	t.Parallel()
	site := mustDefault(t)
	if site.Dict(Lang("fr")) != site.Dict(English) {
		t.Fatal("unknown language did not fall back to english")
	}
}

func TestParseRejectsBadContent(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"missing arabic": `
langs:
  en: {}
`,
		"negative stat": `
langs:
  en:
    about:
      stats: [{label: x, value: -1}]
  ar:
    about:
      stats: [{label: x, value: 1}]
`,
		"level above 100": `
langs:
  en:
    skills:
      items: [{title: x, level: 101}]
  ar:
    skills:
      items: [{title: x, level: 50}]
`,
		"level not a number": `
langs:
  en:
    skills:
      items: [{title: x, level: .nan}]
  ar:
    skills:
      items: [{title: x, level: 50}]
`,
		"rating not a number": `
langs:
  en:
    shop:
      items: [{id: 1, title: x, rating: .nan}]
  ar: {}
`,
		"stat count mismatch": `
langs:
  en:
    about:
      stats: [{label: a, value: 1}, {label: b, value: 2}]
  ar:
    about:
      stats: [{label: a, value: 1}]
`,
		"duplicate project id": `
langs:
  en:
    projects:
      items: [{id: 1, title: a}, {id: 1, title: b}]
  ar: {}
`,
		"not yaml": "langs: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "site.yaml")
	doc := `
brand: Example
langs:
  en:
    hero: {subtitle: hello}
  ar:
    hero: {subtitle: مرحبا}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	site, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if site.Brand != "Example" || site.Dict(Arabic).Hero.Subtitle != "مرحبا" {
		t.Fatalf("unexpected site: %+v", site)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadFile(""); err != nil {
		t.Fatalf("empty path should load embedded content: %v", err)
	}
}

func TestFilterProjects(t *testing.T) {
	t.Parallel()
	projects := mustDefault(t).Dict(English).Projects.Items

	if got := FilterProjects(projects, FilterAll); len(got) != 3 {
		t.Fatalf("all: %d projects", len(got))
	}
	if got := FilterProjects(projects, ""); len(got) != 3 {
		t.Fatalf("empty filter: %d projects", len(got))
	}
	got := FilterProjects(projects, "Enterprise")
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("enterprise: %+v", got)
	}
	if got := FilterProjects(projects, "Advanced"); len(got) != 2 {
		t.Fatalf("advanced: %d projects", len(got))
	}
	if got := FilterProjects(projects, "enterprise"); len(got) != 0 {
		t.Fatalf("category match should be exact, got %d", len(got))
	}
}

func TestSearchProjects(t *testing.T) {
	t.Parallel()
	projects := mustDefault(t).Dict(English).Projects.Items

	if got := SearchProjects(projects, "  "); len(got) != len(projects) {
		t.Fatal("blank query changed the list")
	}
	got := SearchProjects(projects, "kubernetes")
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("kubernetes: %+v", ids(got))
	}
	got = SearchProjects(projects, "QR")
	if len(got) == 0 || got[0].ID != 2 {
		t.Fatalf("qr: %v", ids(got))
	}
	if got := SearchProjects(projects, "zzzz"); len(got) != 0 {
		t.Fatalf("zzzz matched %v", ids(got))
	}
	got = QueryProjects(projects, "Enterprise", "uvicorn")
	if len(got) != 0 {
		t.Fatalf("filter then search: %v", ids(got))
	}
}

func TestProductHelpers(t *testing.T) {
	t.Parallel()
	p := Product{Rating: 4.9, Link: "#"}
	stars := p.Stars()
	filled := 0
	for _, s := range stars {
		if s {
			filled++
		}
	}
	if len(stars) != 5 || filled != 4 {
		t.Fatalf("stars = %v", stars)
	}
	if p.Available() {
		t.Fatal("placeholder link reported as available")
	}
	proj := Project{Features: []string{"a", "b", "c", "d"}}
	if got := proj.KeyFeatures(); len(got) != 3 {
		t.Fatalf("key features = %v", got)
	}
}

func TestLangHelpers(t *testing.T) {
	t.Parallel()
	if ParseLang("AR") != Arabic || ParseLang("ar-EG") != Arabic {
		t.Fatal("arabic codes not parsed")
	}
	if ParseLang("de") != English || ParseLang("") != English {
		t.Fatal("unknown codes should fall back to english")
	}
	if Arabic.Dir() != "rtl" || English.Dir() != "ltr" {
		t.Fatal("wrong text direction")
	}
	if !strings.Contains(English.ToggleLabel(), "العربية") || Arabic.ToggleLabel() != "English" {
		t.Fatal("wrong toggle labels")
	}
}

func TestLocaleToggle(t *testing.T) {
	t.Parallel()
	loc := NewLocale(English)
	if loc.Toggle() != Arabic || loc.Lang() != Arabic {
		t.Fatal("toggle did not switch to arabic")
	}
	loc.Set("xx")
	if loc.Lang() != English {
		t.Fatal("unknown language should normalize to english")
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loc.Toggle()
			_ = loc.Lang()
		}()
	}
	wg.Wait()
	if l := loc.Lang(); l != English {
		t.Fatalf("after an even number of toggles lang = %s", l)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ids(ps []Project) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
