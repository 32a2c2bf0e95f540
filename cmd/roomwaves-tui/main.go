package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/roomwaves/roomwaves/internal/apiclient"
	"github.com/roomwaves/roomwaves/internal/logging"
	"github.com/roomwaves/roomwaves/internal/panels"
	"github.com/roomwaves/roomwaves/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var apiURL string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/roomwaves/config.yml)")
	flag.StringVar(&apiURL, "api", "", "override the analysis API base URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file-key]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Roomwaves TUI - Measurement Dashboard\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	if err := runTUI(cfg, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig, key string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("TUI requires a real terminal")
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := tui.InitializeSkin(cfg.Skin, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	// The alt screen owns the terminal, so logs always go to a file.
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logging.DefaultFile("roomwaves")
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPaths: []string{logFile}})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	apiCfg := apiclient.DefaultConfig()
	apiCfg.BaseURL = cfg.APIURL
	apiCfg.Timeout = cfg.APITimeout
	apiCfg.UserAgent = "roomwaves-tui/" + version
	client, err := apiclient.New(apiCfg, apiclient.WithLogger(logger.Named("api")))
	if err != nil {
		return err
	}

	// Bindings change off the update loop; Send blocks until the program
	// reads the message, so it runs on its own goroutine.
	var program *tea.Program
	notify := func(name string) {
		if p := program; p != nil {
			go p.Send(tui.PanelChangedMsg{Name: name})
		}
	}

	session, err := panels.NewSession(client, panels.Options{
		Logger:         logger.Named("panels"),
		Theme:          tui.SeriesTheme(),
		FrequencyBands: cfg.FrequencyBands,
		SurfaceBands:   cfg.SurfaceBands,
		ParameterBands: cfg.ParameterBands,
		Notify:         notify,
	})
	if err != nil {
		return fmt.Errorf("invalid band configuration: %w", err)
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dashboard := tui.NewDashboardModel(session, tui.DashboardOptions{
		ReverseScrollWheel: cfg.ReverseScrollWheel,
		Logger:             logger.Named("tui"),
	})
	defer dashboard.Close()
	dashPage := tui.NewDashboardPage(dashboard)
	openPage := tui.NewOpenPage(ctx, client, logger.Named("tui"))

	var app *tui.App
	if key = strings.TrimSpace(key); key != "" {
		dashPage.SetParams(key)
		app = tui.NewApp(dashPage, openPage)
	} else {
		app = tui.NewApp(openPage, dashPage)
	}

	logger.Info("starting dashboard", zap.String("api", cfg.APIURL), zap.String("key", key))

	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
