package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/spreadview/core/api"
)

var (
	flagAddr       string
	flagPrefetch   int
	flagNeighbours int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the book to the viewer over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := flagAddr
		if addr == "" {
			addr = current.cfg.Server.Addr
		}
		handler := api.NewHandler(current.book, current.search, current.dialogs, current.log.Named("api"),
			api.WithPrefetch(flagNeighbours))
		srv := &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  current.cfg.Server.ReadTimeout,
			WriteTimeout: current.cfg.Server.WriteTimeout,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if flagPrefetch > 0 {
			go func() {
				all := make([]int, current.book.PageCount())
				for i := range all {
					all[i] = i
				}
				if err := current.book.Prefetch(ctx, all, flagPrefetch); err != nil {
					current.log.Warn("Some page dimensions could not be prefetched", zap.Error(err))
				}
			}()
		}

		errc := make(chan error, 1)
		go func() {
			current.log.Info("Serving book",
				zap.String("addr", addr), zap.String("title", current.book.Title()))
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		current.log.Info("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default: from configuration)")
	serveCmd.Flags().IntVar(&flagPrefetch, "prefetch", 0, "Resolve all page dimensions in the background with this many workers")
	serveCmd.Flags().IntVar(&flagNeighbours, "prefetch-spreads", 2, "Workers warming neighbouring spreads after each layout request (0 disables)")
}
