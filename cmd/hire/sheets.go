package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/config"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/parser"
	"github.com/Veraticus/hireflow/internal/predicate"
	"github.com/Veraticus/hireflow/internal/service"
	"github.com/Veraticus/hireflow/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Publish the applicant book to Google Sheets",
	}
	cmd.AddCommand(sheetsPushCmd())
	cmd.AddCommand(sheetsAuthCmd())
	return cmd
}

func sheetsPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [CRITERIA...]",
		Short: "Write applicants and a summary to the configured spreadsheet",
		Long: `Replace the applicant sheet with a summary block and one row per applicant.

Optional criteria use the same prefixes as search (n/ p/ e/ j/ s/ bd/ ad/)
and limit the rows written.`,
		Example: `  hire sheets push
  hire sheets push j/Software Engineer s/Interviewed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("google sheets is not configured: %w", err)
			}
			filter, err := parser.Criteria(args)
			if err != nil {
				return err
			}

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
			if err != nil {
				return err
			}
			return pushApplicants(ctx, db, writer, filter, cmd.OutOrStdout())
		},
	}
}

type applicantLoader interface {
	LoadApplicants(ctx context.Context) ([]model.Applicant, error)
}

func pushApplicants(ctx context.Context, db applicantLoader, writer service.ReportWriter, filter predicate.Predicate, out io.Writer) error {
	all, err := db.LoadApplicants(ctx)
	if err != nil {
		return err
	}

	selected := all[:0:0]
	for _, a := range all {
		if filter.Test(a) {
			selected = append(selected, a)
		}
	}

	if err := writer.Write(ctx, selected); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Wrote %d applicant(s) to Google Sheets", len(selected))))
	return nil
}

func sheetsAuthCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Sheets with your Google account",
		Long: `Run the OAuth2 consent flow in a browser and save the refresh token.

Requires sheets.client_id and sheets.client_secret in the config file (or the
GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET variables).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.GetViper()
			cfg := sheets.DefaultConfig()
			cfg.ClientID = v.GetString("sheets.client_id")
			cfg.ClientSecret = v.GetString("sheets.client_secret")
			_ = cfg.LoadFromEnv()
			if cfg.ClientID == "" || cfg.ClientSecret == "" {
				return fmt.Errorf("sheets.client_id and sheets.client_secret must be configured")
			}

			tokenFile := config.ExpandPath(v.GetString(config.KeyTokenFile))
			out := cmd.OutOrStdout()
			_, err := sheets.Authorize(cmd.Context(), sheets.AuthConfig{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				TokenFile:    tokenFile,
				ListenAddr:   listen,
				OpenURL: func(url string) {
					_, _ = fmt.Fprintln(out, cli.FormatInfo("Open this URL to authorize hireflow:"))
					_, _ = fmt.Fprintln(out, url)
				},
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, cli.FormatSuccess("Saved Google Sheets token to "+tokenFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "localhost:8080", "address of the local OAuth callback server")

	return cmd
}
