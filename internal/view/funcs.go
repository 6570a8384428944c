package view

import (
	"html/template"
	"strings"
	"time"
)

// Layouts of the datetime filter.
const (
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// inputLayouts are the string forms the datetime filter accepts.
var inputLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":     FormatDatetime,
		"join":         strings.Join,
		"has":          has,
		"deref":        deref,
		"genreChoices": func() []string { return GenreChoices },
		"stateChoices": func() []string { return StateChoices },
	}
}

// FormatDatetime renders a show time with the "medium" (default) or
// "full" layout.  Strings are parsed first; values that cannot be read
// are returned unchanged.
func FormatDatetime(value interface{}, format ...string) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return ""
		}
		t = *v
	case string:
		parsed, ok := parseTime(v)
		if !ok {
			return v
		}
		t = parsed
	default:
		return ""
	}
	layout := mediumLayout
	if len(format) > 0 && format[0] == "full" {
		layout = fullLayout
	}
	return t.Format(layout)
}

func parseTime(s string) (time.Time, bool) {
	for _, l := range inputLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func has(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
