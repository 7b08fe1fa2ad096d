package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listenAddr string // HTTP listen address

// serveCmd exposes the simulator as a JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator as a JSON HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           newRouter(logrus.StandardLogger()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Listening on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "localhost:8080", "HTTP listen address")
	rootCmd.AddCommand(serveCmd)
}
