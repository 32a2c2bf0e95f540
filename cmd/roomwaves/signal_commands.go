package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/model"
)

func newSignalCommand(ctx *commandContext) *cobra.Command {
	var req model.SignalRequest
	var outDir string

	cmd := &cobra.Command{
		Use:   "signal",
		Short: "Generate a logarithmic sweep and its inverse filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}
			if req.FInf <= 0 || req.FSup <= req.FInf {
				return fmt.Errorf("frequency range %d-%d Hz is invalid", req.FInf, req.FSup)
			}
			if req.FS <= 0 || req.FSup > req.FS/2 {
				return fmt.Errorf("--f-sup must not exceed half the sample rate")
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			sig, err := client.Signal(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			files := []struct {
				name string
				b64  string
			}{
				{sig.FilenameSweep, sig.AudioSweepB64},
				{sig.FilenameInverse, sig.AudioInverseB64},
			}
			for i, f := range files {
				name := filepath.Base(f.name)
				if name == "." || name == "/" || name == "" {
					name = "signal_" + strconv.Itoa(i) + ".wav"
				}
				data, err := base64.StdEncoding.DecodeString(f.b64)
				if err != nil {
					return fmt.Errorf("decode %s: %w", name, err)
				}
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				ctx.logger.Debug("wrote signal", zap.String("path", path), zap.Int("bytes", len(data)))
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&req.Duration, "duration", model.DefaultSignalDuration, "Sweep duration in seconds")
	cmd.Flags().IntVar(&req.FInf, "f-inf", model.DefaultSignalFInf, "Start frequency in Hz")
	cmd.Flags().IntVar(&req.FSup, "f-sup", model.DefaultSignalFSup, "End frequency in Hz")
	cmd.Flags().IntVar(&req.FS, "fs", model.DefaultSignalSampleRate, "Sample rate in Hz")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the generated WAV files")
	return cmd
}

func newIRCommand(ctx *commandContext) *cobra.Command {
	var sweepPath, inversePath string
	var factor float64
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ir",
		Short: "Deconvolve a recorded sweep into an impulse response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sweep, err := os.ReadFile(sweepPath)
			if err != nil {
				return fmt.Errorf("read sweep: %w", err)
			}
			inverse, err := os.ReadFile(inversePath)
			if err != nil {
				return fmt.Errorf("read inverse filter: %w", err)
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			res, err := client.CalculateIR(cmd.Context(), model.ImpulseResponseRequest{
				SweepName:      filepath.Base(sweepPath),
				Sweep:          sweep,
				InverseName:    filepath.Base(inversePath),
				Inverse:        inverse,
				DurationFactor: factor,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, res)
			}
			rows := [][]string{
				{"File key", res.Path},
				{"Filename", res.Filename},
				{"Sample rate", strconv.Itoa(res.SampleRate) + " Hz"},
				{"Length", fmt.Sprintf("%d samples", res.DurationSamples)},
			}
			if res.SampleRate > 0 {
				rows = append(rows, []string{"Duration", fmt.Sprintf("%.3f s", float64(res.DurationSamples)/float64(res.SampleRate))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Impulse response", ""}, rows, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&sweepPath, "sweep", "", "Recorded sweep WAV file")
	cmd.Flags().StringVar(&inversePath, "inverse", "", "Inverse filter WAV file")
	cmd.Flags().Float64Var(&factor, "duration-factor", model.DefaultDurationFactor, "Impulse response length as a multiple of the sweep")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("sweep")
	_ = cmd.MarkFlagRequired("inverse")
	return cmd
}
