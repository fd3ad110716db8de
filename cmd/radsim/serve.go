package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/radsim_go/internal/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeCmd(cmd, opts, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: localhost:5000)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, opts *rootOptions, addr string) error {
	calc, settings, err := newCalculator(cmd, opts)
	if err != nil {
		return err
	}
	applyStringFlag(cmd, "addr", &settings.HTTPAddr, addr)

	if err := calc.Catalog().CheckLockstep(); err != nil {
		return fmt.Errorf("refusing to start: %w", err)
	}
	log.Printf("data directory %s, materials %v", settings.DataDir, calc.Catalog().IDs())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpapi.NewServer(settings.HTTPAddr, httpapi.NewHandler(calc))
	return httpapi.Serve(ctx, srv)
}
