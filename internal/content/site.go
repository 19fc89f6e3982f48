package content

import "math"

// Site is the whole bilingual dictionary, keyed by language.
type Site struct {
	Brand string               `yaml:"brand"`
	Langs map[Lang]*Dictionary `yaml:"langs"`
}

// Dict returns the dictionary for lang, or the English one when lang is missing.
func (s *Site) Dict(lang Lang) *Dictionary {
	if d, ok := s.Langs[lang]; ok {
		return d
	}
	return s.Langs[English]
}

// Dictionary is every piece of copy on the page for one language.
type Dictionary struct {
	Nav        []NavItem  `yaml:"nav"`
	Hero       Hero       `yaml:"hero"`
	About      About      `yaml:"about"`
	Skills     Skills     `yaml:"skills"`
	Projects   Projects   `yaml:"projects"`
	Shop       Shop       `yaml:"shop"`
	Experience Experience `yaml:"experience"`
	Contact    Contact    `yaml:"contact"`
	Footer     Footer     `yaml:"footer"`
}

type NavItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Hero struct {
	Subtitle     string `yaml:"subtitle"`
	Description  string `yaml:"description"`
	ViewProjects string `yaml:"view_projects"`
	GetInTouch   string `yaml:"get_in_touch"`
}

type About struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Stats       []Stat `yaml:"stats"`
}

// Stat is one animated counter in the about section.
type Stat struct {
	Icon   string  `yaml:"icon"`
	Label  string  `yaml:"label"`
	Value  float64 `yaml:"value"`
	Suffix string  `yaml:"suffix"`
}

// Final is the value a fully revealed counter shows.
func (s Stat) Final() int { return int(math.Floor(s.Value)) }

type Skills struct {
	Title string  `yaml:"title"`
	Items []Skill `yaml:"items"`
}

// Skill is one card with an animated level bar, Level in percent.
type Skill struct {
	Icon        string  `yaml:"icon"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Level       float64 `yaml:"level"`
}

type Projects struct {
	Title            string    `yaml:"title"`
	KeyFeaturesLabel string    `yaml:"key_features_label"`
	Filters          []Filter  `yaml:"filters"`
	Items            []Project `yaml:"items"`
}

type Filter struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Project struct {
	ID          int          `yaml:"id"`
	Icon        string       `yaml:"icon"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Status      string       `yaml:"status"`
	Complexity  string       `yaml:"complexity"`
	Features    []string     `yaml:"features"`
	Tech        []string     `yaml:"tech"`
	Links       ProjectLinks `yaml:"links"`
	Categories  []string     `yaml:"categories"`
}

type ProjectLinks struct {
	GitHub string `yaml:"github"`
	Demo   string `yaml:"demo"`
	Docs   string `yaml:"docs"`
}

// KeyFeatures is what a project card shows: at most the first three features.
func (p Project) KeyFeatures() []string {
	if len(p.Features) > 3 {
		return p.Features[:3]
	}
	return p.Features
}

type Shop struct {
	Title    string      `yaml:"title"`
	Subtitle string      `yaml:"subtitle"`
	Items    []Product   `yaml:"items"`
	Buttons  ShopButtons `yaml:"buttons"`
}

type ShopButtons struct {
	BuyNow    string `yaml:"buy_now"`
	Preview   string `yaml:"preview"`
	LearnMore string `yaml:"learn_more"`
}

// Product is a digital product sold through an external checkout link.
type Product struct {
	ID          int      `yaml:"id"`
	Icon        string   `yaml:"icon"`
	Title       string   `yaml:"title"`
	Price       string   `yaml:"price"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Tags        []string `yaml:"tags"`
	Rating      float64  `yaml:"rating"`
	Reviews     int      `yaml:"reviews"`
	Link        string   `yaml:"link"`
	Preview     string   `yaml:"preview"`
}

// Stars returns five flags, true for each filled star.
func (p Product) Stars() []bool {
	filled := int(math.Floor(p.Rating))
	stars := make([]bool, 5)
	for i := range stars {
		stars[i] = i < filled
	}
	return stars
}

// Available reports whether the product has a real checkout link rather
// than a "#" placeholder.
func (p Product) Available() bool { return p.Link != "" && p.Link != "#" }

type Experience struct {
	Title   string `yaml:"title"`
	Entries []Job  `yaml:"entries"`
}

type Job struct {
	ID           int      `yaml:"id"`
	Period       string   `yaml:"period"`
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Location     string   `yaml:"location"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
	Tech         []string `yaml:"tech"`
}

type Contact struct {
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Form     ContactForm   `yaml:"form"`
	Links    []ContactLink `yaml:"links"`
	Success  string        `yaml:"success"`
	Error    string        `yaml:"error"`
}

type ContactForm struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Subject string `yaml:"subject"`
	Message string `yaml:"message"`
	Send    string `yaml:"send"`
	Sending string `yaml:"sending"`
}

type ContactLink struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Footer struct {
	Year      int    `yaml:"year"`
	Copyright string `yaml:"copyright"`
	ScrollTop string `yaml:"scroll_top"`
}
