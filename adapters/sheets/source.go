// Package sheets serves the registration table from a Google Sheets range.
package sheets

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"reglookup/domain/lookup"
	"reglookup/internal/errors"
	"reglookup/ports"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Config identifies the spreadsheet range and the service account used to read it
type Config struct {
	SpreadsheetID       string
	Range               string
	ServiceAccountEmail string
	PrivateKey          string
	Timeout             time.Duration
}

// Source fetches the configured range on every call
type Source struct {
	service *gsheets.Service
	config  Config
}

var _ ports.TableSource = (*Source)(nil)

// NewSource authenticates with the configured service account.
// Extra client options are appended after the credentials, so tests can
// point the client at a fake endpoint.
func NewSource(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Source, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.ConfigInvalid("spreadsheet id is required")
	}
	if cfg.Range == "" {
		cfg.Range = "Sheet1"
	}

	clientOpts := opts
	if cfg.ServiceAccountEmail != "" {
		jwtConfig := &jwt.Config{
			Email:      cfg.ServiceAccountEmail,
			PrivateKey: []byte(NormalizePrivateKey(cfg.PrivateKey)),
			Scopes:     []string{gsheets.SpreadsheetsReadonlyScope},
			TokenURL:   google.JWTTokenURL,
		}
		clientOpts = append([]option.ClientOption{option.WithHTTPClient(jwtConfig.Client(ctx))}, opts...)
	}

	service, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Source{service: service, config: cfg}, nil
}

// NormalizePrivateKey turns literal "\n" sequences into newlines.
// Keys kept in single-line environment variables arrive escaped.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Describe names the spreadsheet and range
func (s *Source) Describe() string {
	return fmt.Sprintf("sheets:%s!%s", s.config.SpreadsheetID, s.config.Range)
}

// Fetch reads the range. Row 0 is the header.
func (s *Source) Fetch(ctx context.Context) (lookup.Table, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.service.Spreadsheets.Values.
		Get(s.config.SpreadsheetID, s.config.Range).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(errors.ExternalServiceError("sheets", err), "failed to read %s", s.Describe())
	}

	table := toTable(resp.Values)
	log.Printf("[SheetsSource] %s read in %.2fms (%d rows)",
		s.Describe(), float64(time.Since(start).Nanoseconds())/1e6, len(table))
	return table, nil
}

// toTable renders every cell as a string. Formatted values already arrive as
// strings; anything else goes through fmt.Sprint and null becomes "".
func toTable(values [][]interface{}) lookup.Table {
	table := make(lookup.Table, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			switch c := v.(type) {
			case string:
				cells[i] = c
			case nil:
				cells[i] = ""
			default:
				cells[i] = fmt.Sprint(c)
			}
		}
		table = append(table, cells)
	}
	return table
}
