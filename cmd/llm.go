package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/llm"
	"github.com/abhisek/praxis/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls and their cost",
}

// withEvents opens the database and runs fn against its event repo.
func withEvents(cmd *cobra.Command, fn func(ctx context.Context, events store.EventRepo) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo())
}

// openStore opens the database without building the other services.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		// Purpose is filtered here, so fetch without a limit when it is set.
		if purpose != "" {
			opts.Limit = 0
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			tw := newTable(os.Stdout)
			fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
			shown := 0
			for _, e := range events {
				if purpose != "" && e.Purpose != purpose {
					continue
				}
				if limit > 0 && shown == limit {
					break
				}
				ok := "yes"
				if !e.Success {
					ok = "no"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Purpose,
					truncate(e.Model, 32), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
				shown++
			}
			if shown == 0 {
				fmt.Println("No LLM calls recorded.")
				return nil
			}
			return tw.Flush()
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			tw := newTable(os.Stdout)
			fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
			fmt.Fprintf(tw, "Time:\t%s\n", e.Timestamp.Local().Format(time.RFC3339))
			fmt.Fprintf(tw, "Provider:\t%s\n", e.Provider)
			fmt.Fprintf(tw, "Model:\t%s\n", e.Model)
			fmt.Fprintf(tw, "Purpose:\t%s\n", e.Purpose)
			fmt.Fprintf(tw, "Tokens:\t%d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(tw, "Latency:\t%dms\n", e.LatencyMs)
			if e.Success {
				fmt.Fprintln(tw, "Result:\tok")
			} else {
				fmt.Fprintf(tw, "Result:\tfailed: %s\n", e.ErrorMessage)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			printBody("Request", e.RequestBody)
			printBody("Response", e.ResponseBody)
			return nil
		})
	},
}

func printBody(title, body string) {
	fmt.Printf("\n%s\n%s\n", title, strings.Repeat("─", len(title)))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			tw := newTable(os.Stdout)
			fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS")
			var calls, in, out int
			for _, u := range byPurpose {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
				calls, in, out = calls+u.Calls, in+u.InputTokens, out+u.OutputTokens
			}
			fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\n", calls, in, out)
			if err := tw.Flush(); err != nil {
				return err
			}

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			fmt.Println()
			tw = newTable(os.Stdout)
			fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST (USD)")
			var total float64
			var unpriced []string
			for _, u := range byModel {
				price := llm.LookupCost(u.Model)
				cost := "?"
				if price == nil {
					unpriced = append(unpriced, u.Model)
				} else {
					c := price.Cost(u.InputTokens, u.OutputTokens)
					total += c
					cost = formatCost(c)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
			}
			label := "total"
			if len(unpriced) > 0 {
				label = "total (partial)"
			}
			fmt.Fprintf(tw, "%s\t\t\t\t%s\n", label, formatCost(total))
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(unpriced) > 0 {
				fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls with this purpose (e.g. sop)")
	llmListCmd.Flags().Duration("since", 0, "Only calls within this long ago, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
