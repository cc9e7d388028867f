package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"globe-quiz-service/internal/domain"
)

// NewImportCmd admits a batch file through the same path as the batch API.
func NewImportCmd(opts rootOptions) *cobra.Command {
	var (
		replace   bool
		countryID string
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate, de-duplicate and insert a YAML or JSON question batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("import needs postgres.url; the in-memory store does not outlive the command")
			}

			batch, err := readBatchFile(args[0])
			if err != nil {
				return err
			}
			if countryID == "" {
				countryID = batch.CountryID
			}
			if replace && countryID == "" {
				return fmt.Errorf("--replace needs --country or country_id in the file")
			}

			ctx := cmd.Context()
			rt, err := buildRuntime(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			for _, c := range batch.Countries {
				if err := rt.seeder.UpsertCountry(ctx, c); err != nil {
					return err
				}
			}
			if len(batch.Countries) > 0 {
				log.Info("countries upserted", zap.Int("count", len(batch.Countries)))
			}

			result, err := rt.admission.Upsert(ctx, batch.Questions, domain.UpsertOptions{ReplaceForCountry: replace, CountryID: countryID})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "inserted=%d skipped=%d deleted=%d\n", result.Inserted, result.Skipped, result.Deleted)
			if result.DeleteError != "" {
				fmt.Fprintf(out, "delete failed: %s\n", result.DeleteError)
			}
			for _, s := range result.SkippedDetails {
				fmt.Fprintf(out, "  #%d %s: %s\n", s.Index, s.Reason, s.Text)
				for _, issue := range s.Issues {
					fmt.Fprintf(out, "      - %s\n", issue)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "delete the country's questions before inserting")
	cmd.Flags().StringVar(&countryID, "country", "", "country id for questions without one")
	return cmd
}
