package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"reglookup/app"
	"reglookup/internal/api"
	"reglookup/internal/config"
	"reglookup/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// errNotFound makes the process exit with status 2
var errNotFound = errors.New("registration number not found")

// serviceFactory builds the lookup service; tests swap it for a stub
type serviceFactory func(ctx context.Context) (*app.LookupService, func(), error)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	rootCmd := newRootCmd(containerService)
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNotFound) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func containerService(ctx context.Context) (*app.LookupService, func(), error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := container.New(ctx, appConfig)
	if err != nil {
		return nil, nil, err
	}
	return c.LookupService, func() { c.Shutdown(context.Background()) }, nil
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reglookup-cli",
		Short:         "Look up registration records from the configured table source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newFindCmd(factory),
		newInspectCmd(factory),
	)
	return rootCmd
}

func newFindCmd(factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "find [registration-no]",
		Short: "Print the record for a registration number as JSON",
		Long: `Fetch the table and print the record whose first column equals the
registration number exactly, in the same JSON shape as the HTTP API.

Exit status is 0 when found, 2 when not found and 1 on error.

Example: reglookup-cli find 102`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return runFind(cmd.Context(), svc, args[0], cmd.OutOrStdout())
		},
	}
}

func runFind(ctx context.Context, svc *app.LookupService, key string, out io.Writer) error {
	result, err := svc.Lookup(ctx, key)
	_, body := api.LookupResponse(result, err)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(body); encErr != nil {
		return fmt.Errorf("failed to write result: %w", encErr)
	}

	if err != nil {
		return err
	}
	if !result.Found {
		return errNotFound
	}
	return nil
}

func newInspectCmd(factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the table source, its header and the number of data rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			return runInspect(cmd.Context(), svc, cmd.OutOrStdout())
		},
	}
}

func runInspect(ctx context.Context, svc *app.LookupService, out io.Writer) error {
	header, rows, err := svc.Inspect(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Source:    %s\n", svc.Source().Describe())
	fmt.Fprintf(out, "Columns:   %d\n", len(header))
	fmt.Fprintf(out, "Data rows: %d\n", rows)
	if len(header) > 0 {
		fmt.Fprintf(out, "Key column: %s\n", header[0])
		fmt.Fprintf(out, "Header:    %s\n", strings.Join(header, " | "))
	}
	return nil
}
