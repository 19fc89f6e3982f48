package main

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"
)

// templateFuncs are the formatting helpers available to every template.
var templateFuncs = template.FuncMap{
	"join":   strings.Join,
	"floor":  func(v float64) int { return int(math.Floor(v)) },
	"rating": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"days":   func(d time.Duration) int { return int(d.Hours() / 24) },
	"isPlaceholder": func(href string) bool {
		return href == "" || href == "#"
	},
}
