package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reglookup/domain/lookup"
	"reglookup/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader serves the registration table from a local .xlsx or .csv file.
// The file is re-read on every Fetch.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	timeout  time.Duration
}

var _ ports.TableSource = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	sheet := config.Sheet
	if sheet == "" {
		sheet = DefaultExcelConfig().Sheet
	}
	return &DataReader{
		filePath: config.FilePath,
		fileType: fileType,
		sheet:    sheet,
		timeout:  config.Timeout,
	}
}

// Describe names the file and worksheet being served
func (r *DataReader) Describe() string {
	if r.fileType == "csv" {
		return "csv:" + r.filePath
	}
	return fmt.Sprintf("xlsx:%s#%s", r.filePath, r.sheet)
}

// Fetch reads the whole file into a Table. Cells are returned verbatim.
func (r *DataReader) Fetch(ctx context.Context) (lookup.Table, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	startTime := time.Now()
	var (
		table lookup.Table
		err   error
	)
	switch r.fileType {
	case "csv":
		table, err = r.readCSVData(ctx)
	case "xlsx":
		table, err = r.readExcelData(ctx)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[DataReader] %s read in %.2fms (%d rows)",
		r.Describe(), float64(time.Since(startTime).Nanoseconds())/1e6, len(table))
	return table, nil
}

// readExcelData streams the configured worksheet row by row
func (r *DataReader) readExcelData(ctx context.Context) (lookup.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.Rows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	defer rows.Close()

	table := lookup.Table{}
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading %s interrupted: %w", r.sheet, err)
		}
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of %s: %w", len(table)+1, r.sheet, err)
		}
		table = append(table, cells)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}

	return table, nil
}

// readCSVData reads CSV data, allowing rows of differing length
func (r *DataReader) readCSVData(ctx context.Context) (lookup.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	table := lookup.Table{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reading CSV interrupted: %w", err)
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		table = append(table, record)
	}

	return table, nil
}
