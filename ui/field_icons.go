package ui

import (
	"html/template"
	"strings"
)

// FieldCategory picks the icon shown next to a record field
type FieldCategory string

const (
	CategoryRegistration FieldCategory = "registration"
	CategoryPerson       FieldCategory = "person"
	CategoryFamily       FieldCategory = "family"
	CategoryDate         FieldCategory = "date"
	CategoryOrganization FieldCategory = "organization"
	CategoryLocation     FieldCategory = "location"
	CategoryDocument     FieldCategory = "document"
)

// fieldRule matches a lowercase field name when it contains any of the
// include substrings and none of the exclude substrings.
type fieldRule struct {
	category FieldCategory
	include  []string
	exclude  []string
}

// Order matters: first match wins.
var fieldRules = []fieldRule{
	{category: CategoryRegistration, include: []string{"registration", "reg"}},
	{category: CategoryPerson, include: []string{"name"}, exclude: []string{"father", "mother", "factory"}},
	{category: CategoryFamily, include: []string{"father", "mother"}},
	{category: CategoryDate, include: []string{"birth", "date"}},
	{category: CategoryOrganization, include: []string{"factory", "company", "organization"}},
	{category: CategoryLocation, include: []string{"address", "location"}},
}

// ClassifyField returns the icon category for a field name
func ClassifyField(name string) FieldCategory {
	lower := strings.ToLower(name)
	for _, rule := range fieldRules {
		if containsAny(lower, rule.include) && !containsAny(lower, rule.exclude) {
			return rule.category
		}
	}
	return CategoryDocument
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var categoryIcons = map[FieldCategory]template.HTML{
	CategoryRegistration: `<circle cx="11" cy="11" r="8"></circle><line x1="21" y1="21" x2="16.65" y2="16.65"></line>`,
	CategoryPerson:       `<path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"></path><circle cx="12" cy="7" r="4"></circle>`,
	CategoryFamily:       `<path d="M17 21v-2a4 4 0 0 0-4-4H5a4 4 0 0 0-4 4v2"></path><circle cx="9" cy="7" r="4"></circle><path d="M23 21v-2a4 4 0 0 0-3-3.87"></path><path d="M16 3.13a4 4 0 0 1 0 7.75"></path>`,
	CategoryDate:         `<rect x="3" y="4" width="18" height="18" rx="2" ry="2"></rect><line x1="16" y1="2" x2="16" y2="6"></line><line x1="8" y1="2" x2="8" y2="6"></line><line x1="3" y1="10" x2="21" y2="10"></line>`,
	CategoryOrganization: `<rect x="2" y="7" width="20" height="14" rx="2" ry="2"></rect><path d="M16 21V5a2 2 0 0 0-2-2h-4a2 2 0 0 0-2 2v16"></path>`,
	CategoryLocation:     `<path d="M21 10c0 7-9 13-9 13s-9-6-9-13a9 9 0 0 1 18 0z"></path><circle cx="12" cy="10" r="3"></circle>`,
	CategoryDocument:     `<path d="M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z"></path><polyline points="14 2 14 8 20 8"></polyline><line x1="16" y1="13" x2="8" y2="13"></line><line x1="16" y1="17" x2="8" y2="17"></line>`,
}

// Icon returns the inner SVG markup for the category
func (c FieldCategory) Icon() template.HTML {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryDocument]
}

// fieldPalette cycles by field position
var fieldPalette = []string{"blue", "purple", "indigo", "pink", "amber", "emerald", "cyan", "rose"}

func paletteColor(index int) string {
	return fieldPalette[index%len(fieldPalette)]
}
