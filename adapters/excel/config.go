package excel

import "time"

// ExcelConfig holds configuration for a local spreadsheet table source
type ExcelConfig struct {
	FilePath string        `json:"file_path"`
	Sheet    string        `json:"sheet"`
	Timeout  time.Duration `json:"timeout"`
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet:   "Sheet1",
		Timeout: 10 * time.Second,
	}
}
