// Package fragments provides template path constants for the lookup UI
package fragments

// Template names as registered by ParseFS (base file names)
const (
	IndexPage   = "index.html"
	ResultPanel = "result.html"
)

// GetAllTemplatePaths returns the glob patterns of every template file
func GetAllTemplatePaths() []string {
	return []string{
		"templates/*.html",
		"templates/fragments/*.html",
	}
}
