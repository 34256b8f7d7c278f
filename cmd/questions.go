package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/catalogsync"
	"github.com/abhisek/praxis/internal/config"
	"github.com/abhisek/praxis/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "Browse and manage the question catalog",
}

// openCatalog returns the installed catalog, or the embedded one.
func openCatalog(cmd *cobra.Command) (*questions.Catalog, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	dir, err := catalogDir(cmd, cfg)
	if err != nil {
		return nil, cfg, err
	}
	c, err := catalogsync.Open(dir)
	return c, cfg, err
}

func queryFromFlags(cmd *cobra.Command) (questions.Query, error) {
	var q questions.Query
	category, _ := cmd.Flags().GetString("category")
	discipline, _ := cmd.Flags().GetString("discipline")
	qtype, _ := cmd.Flags().GetString("type")
	size, _ := cmd.Flags().GetString("size")
	q.ModuleID, _ = cmd.Flags().GetString("module")

	q.Category = questions.Category(category)
	if category != "" && !q.Category.Valid() {
		return q, fmt.Errorf("unknown category %q (want one of %v)", category, questions.AllCategories())
	}
	q.Discipline = questions.Discipline(discipline)
	if discipline != "" && !q.Discipline.Valid() {
		return q, fmt.Errorf("unknown discipline %q (want one of %v)", discipline, questions.AllDisciplines())
	}
	q.Type = questions.QuestionType(qtype)
	if qtype != "" && !q.Type.Valid() {
		return q, fmt.Errorf("unknown question type %q (want one of %v)", qtype, questions.AllTypes())
	}
	q.PracticeSize = questions.PracticeSize(size)
	if size != "" && !q.PracticeSize.Valid() {
		return q, fmt.Errorf("unknown practice size %q (want one of %v)", size, questions.AllPracticeSizes())
	}
	return q, nil
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		q, err := queryFromFlags(cmd)
		if err != nil {
			return err
		}
		list := c.Filter(q)
		if q.Discipline != "" {
			for i := range list {
				list[i] = list[i].ForDiscipline(q.Discipline)
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		if len(list) == 0 {
			fmt.Println("No questions match.")
			return nil
		}
		fmt.Printf("%-22s  %-16s  %-18s  %-15s  %s\n", "ID", "Category", "Module", "Type", "Weight")
		fmt.Println(strings.Repeat("─", 84))
		for _, x := range list {
			fmt.Printf("%-22s  %-16s  %-18s  %-15s  %g\n", x.ID, x.Category, x.ModuleID, x.Type, x.Weight)
		}
		fmt.Printf("\n%d of %d questions (catalog %s)\n", len(list), c.Len(), c.Version())
		return nil
	},
}

var questionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one question in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		q, err := c.GetQuestion(args[0])
		if err != nil {
			return err
		}
		if d, _ := cmd.Flags().GetString("discipline"); d != "" {
			disc := questions.Discipline(d)
			if !disc.Valid() {
				return fmt.Errorf("unknown discipline %q", d)
			}
			q = q.ForDiscipline(disc)
		}

		fmt.Printf("ID:        %s\n", q.ID)
		fmt.Printf("Question:  %s\n", q.Text)
		fmt.Printf("Type:      %s\n", q.Type)
		fmt.Printf("Category:  %s\n", q.Category.DisplayName())
		fmt.Printf("Module:    %s\n", q.ModuleID)
		fmt.Printf("Weight:    %g\n", q.Weight)
		if q.UniversalQuestion {
			fmt.Println("Applies:   all disciplines")
		} else {
			names := make([]string, len(q.ApplicableDisciplines))
			for i, d := range q.ApplicableDisciplines {
				names[i] = d.DisplayName()
			}
			fmt.Printf("Applies:   %s\n", strings.Join(names, ", "))
		}
		if q.HelpText != "" {
			fmt.Printf("Help:      %s\n", q.HelpText)
		}
		if q.BenchmarkReference != "" {
			fmt.Printf("Benchmark: %s\n", q.BenchmarkReference)
		}
		if len(q.Options) > 0 {
			fmt.Println("\nOptions")
			for _, o := range q.Options {
				fmt.Printf("  %-20s %4g  %s\n", o.Value, o.Score, o.Text)
			}
		}
		if len(q.ScoreInterpretation) > 0 {
			fmt.Println("\nInterpretation")
			for _, key := range slices.Sorted(maps.Keys(q.ScoreInterpretation)) {
				in := q.ScoreInterpretation[key]
				fmt.Printf("  %-8s %-9s %s\n", key, in.Priority, in.Interpretation)
			}
		}
		return nil
	},
}

var questionsModulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List modules with their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("%-18s  %-22s  %s\n", "Module", "Category", "Questions")
		fmt.Println(strings.Repeat("─", 54))
		for _, id := range c.Modules() {
			qs := c.ByModule(id)
			fmt.Printf("%-18s  %-22s  %d\n", id, qs[0].Category.DisplayName(), len(qs))
		}
		return nil
	},
}

var questionsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog directory",
	Long:  "Validate a catalog directory (catalog.yaml plus set files) against the question schema. Without --dir the built-in catalog is checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		var (
			c   *questions.Catalog
			err error
		)
		if dir == "" {
			c = questions.Default()
		} else {
			c, err = questions.Load(os.DirFS(dir))
		}
		if err != nil {
			return err
		}
		fmt.Printf("OK: catalog %s, %d questions in %d modules\n", c.Version(), c.Len(), len(c.Modules()))
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("category", "", "Filter by category")
	questionsListCmd.Flags().String("module", "", "Filter by module ID")
	questionsListCmd.Flags().String("discipline", "", "Filter by discipline and apply its overrides")
	questionsListCmd.Flags().String("type", "", "Filter by question type")
	questionsListCmd.Flags().String("size", "", "Filter by practice size")
	questionsListCmd.Flags().Bool("json", false, "Print questions as JSON")

	questionsShowCmd.Flags().String("discipline", "", "Apply a discipline's overrides")

	questionsValidateCmd.Flags().String("dir", "", "Catalog directory to validate")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsShowCmd)
	questionsCmd.AddCommand(questionsModulesCmd)
	questionsCmd.AddCommand(questionsValidateCmd)
	questionsCmd.AddCommand(questionsUpdateCmd)
}
