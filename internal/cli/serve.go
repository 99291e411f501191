package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nurgulresearch/irec/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload endpoint for the IREC web form",
	Long: `Serve accepts multipart uploads and answers with the validation report.

Endpoints:
  POST /check-doc/     field "file", optional repeated "attachment"
  POST /v1/validate    same as /check-doc/
  GET  /healthz

Query parameters:
  parts=0,1,2          return only the named parts
  format=json|md|html  report format (default json)

Example:
  irec serve --listen :8000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "listen address (default from config, :8000)")
	_ = viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8000"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, newPipeline(true), logger)

	fmt.Fprintf(os.Stderr, "✓ Serving on %s\n", cfg.Server.Listen)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("server stopped", zap.Bool("interrupted", ctx.Err() == context.Canceled))
	return nil
}
