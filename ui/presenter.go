package ui

import (
	"strings"

	"reglookup/domain/lookup"
	"reglookup/internal/api"
)

// ResultState is what the result panel shows
type ResultState string

const (
	StateFound    ResultState = "found"
	StateNotFound ResultState = "not_found"
	StateError    ResultState = "error"
)

// FieldView is one rendered record field
type FieldView struct {
	Label    string
	Value    string
	Category FieldCategory
	Color    string
}

// ResultView is the data behind the result fragment
type ResultView struct {
	Key     string
	State   ResultState
	Fields  []FieldView
	Message string
}

// PageView is the data behind the full page
type PageView struct {
	Title  string
	Key    string
	Result *ResultView
	// Failure is shown client-side when the search request itself fails
	Failure *ResultView
}

// requestFailedMessage fills the error panel when no response reached the page
const requestFailedMessage = "The search could not be completed. Please try again."

func newPageView(key string, result *ResultView) PageView {
	return PageView{
		Title:   pageTitle,
		Key:     key,
		Result:  result,
		Failure: &ResultView{State: StateError, Message: requestFailedMessage},
	}
}

// newResultView turns a lookup outcome into what the user sees.
// Empty values and names starting with "_" are not shown.
func newResultView(key string, result lookup.Result, err error) *ResultView {
	view := &ResultView{Key: key}
	switch {
	case err != nil:
		view.State = StateError
		view.Message = api.InternalServerError
	case !result.Found:
		view.State = StateNotFound
	default:
		view.State = StateFound
		for i, field := range result.Record.Fields() {
			if field.Value == "" || strings.HasPrefix(field.Name, "_") {
				continue
			}
			view.Fields = append(view.Fields, FieldView{
				Label:    fieldLabel(field.Name),
				Value:    field.Value,
				Category: ClassifyField(field.Name),
				Color:    paletteColor(i),
			})
		}
	}
	return view
}

// fieldLabel names parent fields uniformly; everything else keeps its header
func fieldLabel(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "father"):
		return "Father's Name"
	case strings.Contains(lower, "mother"):
		return "Mother's Name"
	default:
		return name
	}
}
