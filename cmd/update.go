package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/catalogsync"
)

var questionsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install a newer question catalog bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		bundleURL, _ := cmd.Flags().GetString("url")
		force, _ := cmd.Flags().GetBool("force")
		if bundleURL == "" {
			return errors.New("--url is required")
		}

		current, cfg, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		dir, err := catalogDir(cmd, cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		res, err := catalogsync.New(nil).Update(ctx, catalogsync.UpdateInput{
			BundleURL:      bundleURL,
			CurrentVersion: current.Version(),
			Dir:            dir,
			Force:          force,
		}, func(p catalogsync.Progress) {
			fmt.Println(p.Message)
		})

		if errors.Is(err, catalogsync.ErrAlreadyLatest) {
			fmt.Println("Already running the latest catalog.")
			return nil
		}
		if err != nil {
			if os.IsPermission(err) {
				return fmt.Errorf("%w\n\nSet PRAXIS_CATALOG_DIR to a writable directory", err)
			}
			return err
		}

		fmt.Printf("Installed catalog %s (%d questions) in %s\n", res.Version, res.Questions, res.Dir)
		return nil
	},
}

func init() {
	questionsUpdateCmd.Flags().String("url", "", "URL of the catalog .tar.gz bundle")
	questionsUpdateCmd.Flags().Bool("force", false, "Reinstall even when the bundle is not newer")
}
