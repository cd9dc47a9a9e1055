// ABOUTME: Cobra command running the in-memory fake posts API.
// ABOUTME: Serves a jsonplaceholder-compatible /posts resource for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/postboard/internal/fakeapi"
)

var (
	fakeAddr string
	fakeSeed int
)

var fakeAPICmd = &cobra.Command{
	Use:   "fake-api",
	Short: "Run a local fake posts API",
	Long: `Serve an in-memory jsonplaceholder-compatible posts API.

Like the public service, created posts are answered with a new id but are
not stored, and updating an id it never served fails with 500.`,
	RunE: runFakeAPI,
}

func init() {
	rootCmd.AddCommand(fakeAPICmd)
	fakeAPICmd.Flags().StringVar(&fakeAddr, "addr", "127.0.0.1:3000", "Listen address")
	fakeAPICmd.Flags().IntVar(&fakeSeed, "seed", fakeapi.DefaultSeed, "Number of posts to seed")
}

func runFakeAPI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              fakeAddr,
		Handler:           fakeapi.New(fakeSeed, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Printf("Fake posts API listening on http://%s/posts\n", fakeAddr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("fake API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return srv.Shutdown(shutdownCtx)
	}
}
