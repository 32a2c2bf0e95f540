package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roomwaves/roomwaves/internal/panels"
)

type panelReport struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
	Detail string `json:"detail,omitempty"`
	Bands  string `json:"bands,omitempty"`
	Error  string `json:"error,omitempty"`
}

type parameterReport struct {
	Band       string  `json:"band"`
	EDT        float64 `json:"edt"`
	T60FromT20 float64 `json:"t60_from_t20"`
	T60FromT30 float64 `json:"t60_from_t30"`
	C80        float64 `json:"c80"`
	D50        float64 `json:"d50"`
}

type analysisReport struct {
	Key        string            `json:"key"`
	Panels     []panelReport     `json:"panels"`
	SNRDB      *float64          `json:"snr_db"`
	Quality    *panels.Quality   `json:"quality,omitempty"`
	Parameters []parameterReport `json:"parameters,omitempty"`
}

func (r analysisReport) failed() int {
	n := 0
	for _, p := range r.Panels {
		if p.Error != "" {
			n++
		}
	}
	return n
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var frequencyBands, surfaceBands, parameterBands int

	cmd := &cobra.Command{
		Use:   "analyze <file-key>",
		Short: "Load every panel of a measurement and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			opts := panels.Options{
				Logger:         ctx.logger.Named("panels"),
				FrequencyBands: pick(frequencyBands, cfg.FrequencyBands),
				SurfaceBands:   pick(surfaceBands, cfg.SurfaceBands),
				ParameterBands: pick(parameterBands, cfg.ParameterBands),
			}
			session, err := panels.NewSession(client, opts)
			if err != nil {
				return err
			}
			defer session.Close()

			key := strings.TrimSpace(args[0])
			if key == "" {
				return fmt.Errorf("file key is empty")
			}
			report, err := analyze(cmd.Context(), session, key)
			if err != nil {
				return err
			}
			ctx.logger.Debug("analysis finished", zap.String("key", key), zap.Int("failed", report.failed()))

			if jsonOut {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
			}
			if n := report.failed(); n > 0 {
				return fmt.Errorf("%d of %d panels failed to load", n, len(report.Panels))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")
	cmd.Flags().IntVar(&frequencyBands, "frequency-bands", 0, "Frequency response smoothing (1/N octave)")
	cmd.Flags().IntVar(&surfaceBands, "surface-bands", 0, "Cumulative spectral decay bands (1/N octave)")
	cmd.Flags().IntVar(&parameterBands, "parameter-bands", 0, "Parameter filter bank (1 octave, 3 third-octave)")
	return cmd
}

func pick(flag, cfg int) int {
	if flag > 0 {
		return flag
	}
	return cfg
}

// analyze shows every panel of session for key concurrently. Panel failures
// are reported in the result; only context cancellation is an error.
func analyze(ctx context.Context, s *panels.Session, key string) (analysisReport, error) {
	report := analysisReport{Key: key, Panels: make([]panelReport, 7)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st := s.Waveform.Toggle(gctx, key, nil)
		report.Panels[0] = panelReport{Name: "Waveform", Loaded: st.HasData, Error: st.Err,
			Detail: points(len(st.Data.Primary().Data))}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.FrequencyResponse.Toggle(gctx, key, nil)
		report.Panels[1] = panelReport{Name: "Frequency Response", Loaded: st.HasData, Error: st.Err,
			Detail: points(len(st.Data.Primary().Data)), Bands: s.FrequencyResponse.Params().Label(panels.ParamBands)}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.Spectrogram.Toggle(gctx, key, nil)
		report.Panels[2] = panelReport{Name: "Spectrogram", Loaded: st.HasData, Error: st.Err,
			Detail: cells(len(st.Data.F), len(st.Data.T))}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.Surface3D.Toggle(gctx, key, nil)
		report.Panels[3] = panelReport{Name: "3D Surface", Loaded: st.HasData, Error: st.Err,
			Detail: cells(len(st.Data.F), len(st.Data.T)), Bands: s.Surface3D.Params().Label(panels.ParamBands)}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.Parameters.Toggle(gctx, key, nil)
		report.Panels[4] = panelReport{Name: "Parameters", Loaded: st.HasData, Error: st.Err,
			Bands: s.Parameters.Params().Label(panels.ParamBands)}
		if st.HasData {
			rows := panels.ParameterRows(st.Data)
			report.Panels[4].Detail = fmt.Sprintf("%d bands", len(rows))
			for _, r := range rows {
				report.Parameters = append(report.Parameters, parameterReport{
					Band: r.BandLabel(), EDT: r.EDT, T60FromT20: r.T60FromT20,
					T60FromT30: r.T60FromT30, C80: r.C80, D50: r.D50,
				})
			}
		}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.SNR.FetchSNR(gctx, key)
		report.Panels[5] = panelReport{Name: "SNR", Loaded: st.HasData, Error: st.Err}
		report.SNRDB = s.SNR.SNR()
		report.Quality = s.SNR.Quality()
		switch {
		case report.SNRDB != nil:
			report.Panels[5].Detail = fmt.Sprintf("%.1f dB", *report.SNRDB)
		case st.HasData:
			report.Panels[5].Detail = "not computable"
		}
		return gctx.Err()
	})
	g.Go(func() error {
		st := s.EnvelopeDb.Toggle(gctx, key, nil)
		report.Panels[6] = panelReport{Name: "Envelope", Loaded: st.HasData, Error: st.Err,
			Detail: points(len(st.Data.Primary().Data))}
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return analysisReport{}, err
	}
	return report, nil
}

func points(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d points", n)
}

func cells(freqs, times int) string {
	if freqs == 0 || times == 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", freqs, times)
}

func printReport(w io.Writer, r analysisReport, colorize bool) {
	fmt.Fprintf(w, "Measurement: %s\n", r.Key)

	rows := make([][]string, 0, len(r.Panels))
	for _, p := range r.Panels {
		status := "ok"
		if p.Error != "" {
			status = p.Error
		}
		rows = append(rows, []string{p.Name, status, p.Detail, p.Bands})
	}
	fmt.Fprintln(w, renderTable([]string{"Panel", "Status", "Detail", "Bands"}, rows, nil))

	if r.Quality != nil && r.SNRDB != nil {
		label := r.Quality.Label
		if colorize {
			label = qualityColors(r.Quality.Level).Sprint(label)
		}
		fmt.Fprintf(w, "SNR %.1f dB: %s. %s\n", *r.SNRDB, label, r.Quality.Description)
	}

	if len(r.Parameters) > 0 {
		prows := make([][]string, 0, len(r.Parameters))
		for _, p := range r.Parameters {
			prows = append(prows, []string{
				p.Band,
				fmt.Sprintf("%.2f", p.EDT),
				fmt.Sprintf("%.2f", p.T60FromT20),
				fmt.Sprintf("%.2f", p.T60FromT30),
				fmt.Sprintf("%.1f", p.C80),
				fmt.Sprintf("%.2f", p.D50),
			})
		}
		right := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
		fmt.Fprintln(w, renderTable([]string{"Band (Hz)", "EDT (s)", "T20 (s)", "T30 (s)", "C80 (dB)", "D50"}, prows, right))
	}
}

func qualityColors(level panels.QualityLevel) text.Colors {
	switch level {
	case panels.Excellent:
		return text.Colors{text.FgGreen, text.Bold}
	case panels.Good:
		return text.Colors{text.FgHiGreen}
	case panels.Questionable:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed, text.Bold}
	}
}
