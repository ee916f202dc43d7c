package container

import (
	"context"
	"fmt"
	"log"

	"reglookup/adapters/excel"
	"reglookup/adapters/postgres"
	"reglookup/adapters/sheets"
	"reglookup/app"
	"reglookup/internal/config"
	"reglookup/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	Source        ports.TableSource
	LookupService *app.LookupService
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
	}

	if err := c.initSource(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize table source: %w", err)
	}
	c.LookupService = app.NewLookupService(c.Source)

	log.Printf("Container initialized with table source %s", c.Source.Describe())
	return c, nil
}

// initSource builds the table source selected by TABLE_SOURCE
func (c *Container) initSource(ctx context.Context) error {
	cfg := c.Config
	timeout := cfg.Source.FetchTimeout

	switch cfg.Source.Kind {
	case config.SourceSheets:
		src, err := sheets.NewSource(ctx, sheets.Config{
			SpreadsheetID:       cfg.Sheets.SpreadsheetID,
			Range:               cfg.Sheets.Range,
			ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
			PrivateKey:          cfg.Sheets.PrivateKey,
			Timeout:             timeout,
		})
		if err != nil {
			return err
		}
		c.Source = src

	case config.SourceExcel:
		excelConfig := excel.DefaultExcelConfig()
		excelConfig.FilePath = cfg.Excel.FilePath
		excelConfig.Sheet = cfg.Excel.Sheet
		excelConfig.Timeout = timeout
		c.Source = excel.NewDataReader(excelConfig)

	case config.SourcePostgres:
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return err
		}
		src, err := postgres.NewTableSource(db, postgres.TableConfig{
			Table:   cfg.Database.Table,
			OrderBy: cfg.Database.OrderBy,
			Timeout: timeout,
		})
		if err != nil {
			db.Close()
			return err
		}
		c.DB = db
		c.Source = src

	default:
		return fmt.Errorf("unknown table source %q", cfg.Source.Kind)
	}
	return nil
}

// Shutdown releases held resources
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
