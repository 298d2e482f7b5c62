package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aevon-lab/login-usage/internal/core/storage/postgres"
	"github.com/aevon-lab/login-usage/internal/projection"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type queryFlags struct {
	start     string
	end       string
	aggregate string
	format    string
}

func newQueryCmd(a *app) *cobra.Command {
	var f queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print unique users per interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(f.format); err != nil {
				return err
			}
			req, err := projection.ParseRequest(f.start, f.end, f.aggregate)
			if err != nil {
				return err
			}
			resp, err := a.query(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeUsage(cmd.OutOrStdout(), f.format, resp)
		},
	}
	cmd.Flags().StringVar(&f.start, "start", "", "Inclusive lower bound (YYYY-MM-DD or RFC3339, default end - 90 days)")
	cmd.Flags().StringVar(&f.end, "end", "", "Exclusive upper bound (YYYY-MM-DD or RFC3339, default now)")
	cmd.Flags().StringVar(&f.aggregate, "aggregate", "w", "Interval: d, w, m, q or y")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format: json, yaml or csv")
	return cmd
}

// query only needs the bucket table, so it skips the source and checkpoint
// backends.
func (a *app) query(ctx context.Context, req projection.QueryRequest) (*projection.UsageResponse, error) {
	db, err := postgres.NewAdapter(a.cfg.Database.DSN, a.cfg.Database.MaxOpenConns, a.cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Prepare(ctx); err != nil {
		return nil, err
	}
	return projection.NewService(db, nil).Usage(ctx, req)
}

func validateFormat(format string) error {
	switch format {
	case "json", "yaml", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported --format %q (must be json, yaml or csv)", format)
	}
}

func writeUsage(w io.Writer, format string, resp *projection.UsageResponse) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "csv":
		body, err := projection.EncodeCSV(resp.Data)
		if err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		_, err = w.Write(body)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
}
