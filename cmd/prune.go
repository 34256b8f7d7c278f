package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return errors.New("--keep must not be negative")
		}
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			repo := rt.store.AssessmentRepo()
			before, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			if err := repo.Prune(ctx, keep); err != nil {
				return fmt.Errorf("prune: %w", err)
			}
			rt.dashboard.Invalidate(ctx)
			fmt.Printf("Removed %d assessments, kept %d.\n", max(before-keep, 0), min(before, keep))
			return nil
		})
	},
}

func init() {
	pruneCmd.Flags().Int("keep", 10, "Number of recent assessments to keep")
}
