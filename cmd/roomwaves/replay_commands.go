package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roomwaves/roomwaves/internal/replay"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var frequencyBands, surfaceBands, parameterBands []int

	cmd := &cobra.Command{
		Use:   "record <file-key>",
		Short: "Store every panel response of a measurement as replay fixtures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.FixturesDir
			}
			store, err := replay.OpenStore(dir)
			if err != nil {
				return err
			}
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			n, err := replay.Record(cmd.Context(), client, store, args[0], replay.RecordOptions{
				FrequencyBands: orConfigured(frequencyBands, cfg.FrequencyBands),
				SurfaceBands:   orConfigured(surfaceBands, cfg.SurfaceBands),
				ParameterBands: orConfigured(parameterBands, cfg.ParameterBands),
				Logger:         ctx.logger.Named("replay"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d responses for %s in %s\n", n, args[0], store.Dir())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Fixtures directory (default from fixtures-dir)")
	cmd.Flags().IntSliceVar(&frequencyBands, "frequency-bands", nil, "Frequency response band variants to record")
	cmd.Flags().IntSliceVar(&surfaceBands, "surface-bands", nil, "Surface band variants to record")
	cmd.Flags().IntSliceVar(&parameterBands, "parameter-bands", nil, "Parameter band variants to record")
	return cmd
}

func orConfigured(v []int, cfg int) []int {
	if len(v) > 0 {
		return v
	}
	return []int{cfg}
}

func newReplayCommand(ctx *commandContext) *cobra.Command {
	var dir, addr string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Serve recorded fixtures on the analysis API routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.FixturesDir
			}
			if addr == "" {
				addr = cfg.ReplayAddr
			}
			store, err := replay.OpenStore(dir)
			if err != nil {
				return err
			}

			srv := replay.NewServer(addr, store, ctx.logger.Named("replay"))
			if err := srv.Start(); err != nil {
				return fmt.Errorf("failed to start replay server: %w", err)
			}
			ctx.logger.Info("replay server listening",
				zap.String("addr", srv.Addr()),
				zap.String("dir", store.Dir()),
				zap.Int("fixtures", len(store.Fixtures())))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d fixtures on http://%s (Ctrl+C to stop)\n", len(store.Fixtures()), srv.Addr())

			return serveUntilDone(cmd.Context(), srv)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Fixtures directory (default from fixtures-dir)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from replay-addr)")
	return cmd
}

// serveUntilDone blocks until ctx is cancelled or the process is signalled,
// then stops srv.
func serveUntilDone(ctx context.Context, srv *replay.Server) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})
	return g.Wait()
}
