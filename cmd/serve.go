package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/praxis/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
			cfg := rt.cfg
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if cfg.Auth.Secret == "" {
				return errors.New("PRAXIS_JWT_SECRET (or auth.secret) is required to serve the API")
			}

			auth, err := server.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Deps{
				Catalog:     rt.catalog,
				Assessments: rt.store.AssessmentRepo(),
				Dashboard:   rt.dashboard,
				Plans:       rt.plans,
				Auth:        auth,
				Logger:      rt.log,
			}, server.Options{
				Addr:              cfg.Server.Addr,
				AllowedOrigins:    cfg.Server.AllowedOrigins,
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cfg.Server.ShutdownTimeout,
			})
			if err != nil {
				return err
			}

			rt.log.Info("serving", "addr", cfg.Server.Addr, "catalog", rt.catalog.Version())
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue an API bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
			cfg.Auth.TokenTTL = ttl
		}
		auth, err := server.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			return err
		}
		token, exp, err := auth.Issue(args[0])
		if err != nil {
			return err
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires %s\n", exp.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PRAXIS_ADDR)")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default from config)")
}
