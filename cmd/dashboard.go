package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the practice dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			sum, err := rt.dashboard.Summary(ctx)
			if err != nil {
				return fmt.Errorf("build dashboard: %w", err)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}

			if sum.Latest == nil {
				fmt.Println("No assessments yet. Run `praxis assess` to start one.")
				return nil
			}

			l := sum.Latest
			fmt.Printf("%s (%s)\n", l.PracticeName, l.Discipline.DisplayName())
			fmt.Printf("Latest:  %.0f%% %s on %s, catalog %s\n",
				l.Overall, l.Bucket.Label(), l.CompletedAt.Local().Format("2006-01-02"), l.CatalogVersion)
			fmt.Printf("Total:   %d assessments\n", sum.Completed)
			if sum.Trend != nil {
				fmt.Printf("Trend:   %+.1f since %s\n", sum.Trend.Delta, sum.Trend.Previous.CompletedAt.Local().Format("2006-01-02"))
			}

			deltas := make(map[string]float64)
			if sum.Trend != nil {
				for _, ct := range sum.Trend.Categories {
					deltas[string(ct.Category)] = ct.Delta
				}
			}

			fmt.Println()
			fmt.Printf("%-26s  %6s  %-12s  %s\n", "Category", "Score", "Level", "Change")
			fmt.Println(strings.Repeat("─", 60))
			for _, cs := range sum.Categories {
				change := ""
				if d, ok := deltas[string(cs.Category)]; ok {
					change = fmt.Sprintf("%+.1f", d)
				}
				fmt.Printf("%-26s  %5.0f%%  %-12s  %s\n", cs.Category.DisplayName(), cs.Percent, cs.Bucket.Label(), change)
			}

			if len(sum.Priorities) > 0 {
				fmt.Println()
				fmt.Println("Priorities")
				fmt.Println(strings.Repeat("─", 60))
				for _, p := range sum.Priorities {
					fmt.Printf("[%s] %s\n", p.Priority, p.Question)
					fmt.Printf("    %s\n", p.Interpretation)
					if p.Timeframe != "" {
						fmt.Printf("    within %s\n", p.Timeframe)
					}
				}
			}
			return nil
		})
	},
}

func init() {
	dashboardCmd.Flags().Bool("json", false, "Print the summary as JSON")
}
