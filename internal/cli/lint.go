package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"globe-quiz-service/internal/domain"
	"globe-quiz-service/internal/quality"
)

// NewLintCmd pre-checks a batch file without touching any store.
func NewLintCmd(opts rootOptions) *cobra.Command {
	var profileFlag string
	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Report pre-check issues for every question in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			if profileFlag == "" {
				profileFlag = cfg.Questions.WriteProfile
			}
			profile, err := quality.ParseProfile(profileFlag)
			if err != nil {
				return err
			}
			batch, err := readBatchFile(args[0])
			if err != nil {
				return err
			}
			failed := lintBatch(cmd, batch, quality.NewPreChecker(profile))
			if failed > 0 {
				return fmt.Errorf("%d of %d questions failed pre-check", failed, len(batch.Questions))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profileFlag, "profile", "", "content profile: lenient or strict (default questions.write_profile)")
	return cmd
}

func lintBatch(cmd *cobra.Command, batch batchFile, checker *quality.PreChecker) int {
	names := make(map[string]string, len(batch.Countries))
	for _, c := range batch.Countries {
		names[c.ID] = c.Name
	}
	out := cmd.OutOrStdout()
	failed := 0
	for i, q := range batch.Questions {
		if q.CountryID == "" {
			q.CountryID = batch.CountryID
		}
		report := checker.Check(quality.Candidate{Question: q, CountryName: names[q.CountryID]})
		if report.IsValid {
			continue
		}
		failed++
		fmt.Fprintf(out, "#%d [%s] %s\n", i, report.Severity, label(q))
		for j, issue := range report.Issues {
			fmt.Fprintf(out, "    - %s (%s)\n", issue, report.Recommendations[j])
		}
	}
	fmt.Fprintf(out, "%d checked, %d failed\n", len(batch.Questions), failed)
	return failed
}

func label(q domain.Question) string {
	if q.ID != "" {
		return q.ID
	}
	return q.Text
}
