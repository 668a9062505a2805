package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/browser"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a simulation over HTTP.",
	Long: "`serve` starts a monitoring server so that a user interface can " +
		"reset, step and observe the simulation through a JSON API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadSimConfig(cmd)
		if err != nil {
			return err
		}

		sim, err := newSimulation(cfg, nil)
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		monitor := monitoring.NewMonitor().WithPortNumber(port)
		monitor.RegisterEngine(sim.engine)

		addr, err := monitor.StartServer()
		if err != nil {
			return err
		}

		openBrowser, _ := cmd.Flags().GetBool("open-browser")
		if openBrowser {
			url := fmt.Sprintf("http://localhost:%d/api/state", addr.Port)
			err = browser.OpenURL(url)
			if err != nil {
				slog.Warn("cannot open browser", "error", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		<-ctx.Done()
		slog.Info("shutting down monitoring server")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()

		err = monitor.Stop(shutdownCtx)
		if err != nil {
			return err
		}

		return sim.close()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addSimFlags(serveCmd)
	serveCmd.Flags().Int("port", 0,
		"Port of the monitoring server; 0 picks a random port.")
	serveCmd.Flags().Bool("open-browser", false,
		"Open the monitoring API in a browser.")
}
