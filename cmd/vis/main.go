package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/vis/internal/capture"
	"github.com/san-kum/vis/internal/config"
	"github.com/san-kum/vis/internal/demo"
	"github.com/san-kum/vis/internal/logging"
	"github.com/san-kum/vis/internal/surface"
	"github.com/san-kum/vis/internal/surface/term"
	"github.com/san-kum/vis/internal/surface/window"
	"github.com/san-kum/vis/internal/vis"
	"github.com/spf13/cobra"
)

var (
	record     bool
	fps        int
	configFile string
	preset     string
	backend    string
	output     string
	maxFrames  int
	report     bool
	logLevel   string
)

// main registers the vis commands and flags and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "vis",
		Short:        "frame-based visualization runner",
		SilenceUsage: true,
		RunE:         runScene,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVarP(&record, "rec", "r", false, "record frames and encode a video on exit")
	rootCmd.Flags().IntVarP(&fps, "fps", "f", 0, "override the target frame rate")
	rootCmd.Flags().StringVar(&preset, "preset", "", "use a named window preset")
	rootCmd.Flags().StringVar(&backend, "backend", "", "surface backend (window, offscreen, term)")
	rootCmd.Flags().StringVar(&output, "out", "", "video output path")
	rootCmd.Flags().IntVar(&maxFrames, "frames", 0, "stop after this many frames (offscreen only)")
	rootCmd.Flags().BoolVar(&report, "report", false, "plot fps samples after the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list window presets",
		Run:   listPresets,
	}

	cleanCmd := &cobra.Command{
		Use:   "clean [output]",
		Short: "remove stale frame snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cleanFrames,
	}

	rootCmd.AddCommand(presetsCmd, cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers the yaml file, the preset and explicit flags over the
// defaults, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg.ApplyPreset(p)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("out") {
		cfg.Recording.Output = output
	}
	if flags.Changed("frames") {
		cfg.MaxFrames = maxFrames
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSurface(cfg *config.Config) surface.Surface {
	switch cfg.Backend {
	case "offscreen":
		return surface.NewOffscreen(surface.WithMaxFrames(cfg.MaxFrames))
	case "term":
		return term.New(term.WithSize(cfg.Terminal.Cols, cfg.Terminal.Rows))
	default:
		return window.New()
	}
}

// fontPath falls back to the backend's built-in font when the default font
// file is not present. An explicitly configured path is kept as is.
func fontPath(cfg *config.Config, log *slog.Logger) string {
	if cfg.FontPath != config.DefaultFontPath {
		return cfg.FontPath
	}
	if _, err := os.Stat(cfg.FontPath); err != nil {
		log.Warn("font not found, using built-in", "path", cfg.FontPath)
		return ""
	}
	return cfg.FontPath
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if cfg.Backend == "term" {
		// the terminal backend owns the screen
		log = logging.Discard()
	}
	gg.SetLogger(log)

	view := vis.NewView(newSurface(cfg),
		vis.WithSize(cfg.Width, cfg.Height),
		vis.WithFPS(cfg.FPS),
		vis.WithFont(fontPath(cfg, log), cfg.FontSize),
		vis.WithEncoder(capture.NewFFmpeg(cfg.Recording.FFmpeg, cfg.Recording.FFmpegArgs...)),
		vis.WithJPEGQuality(cfg.Recording.JPEGQuality),
		vis.WithLogger(log),
	)
	if err := view.Setup(cfg.Title); err != nil {
		return err
	}

	ctrl := vis.NewController(vis.Args{
		Record: record,
		FPS:    fps,
		Output: cfg.Recording.Output,
	}, vis.WithControllerLogger(log))
	demo.Scene(ctrl, cfg.Width, cfg.Height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := ctrl.Run(ctx, view)

	var encErr *capture.EncodeError
	if errors.As(runErr, &encErr) && len(encErr.Output) > 0 {
		os.Stderr.Write(encErr.Output)
	}
	if res := ctrl.Encoded(); res.OK() {
		fmt.Printf("saved %d frames to %s (%s)\n", res.Frames, view.Output(), res.Duration.Round(time.Millisecond))
	}

	if report {
		printReport(ctrl.FPSSamples())
	}
	return runErr
}

func printReport(samples []float64) {
	if len(samples) == 0 {
		fmt.Println("no fps samples collected")
		return
	}
	graph := asciigraph.Plot(samples,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("fps per sample window"),
	)
	fmt.Println(graph)
}

func listPresets(cmd *cobra.Command, args []string) {
	fmt.Println("available presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		line := fmt.Sprintf("  %-8s %dx%d font %d", name, p.Width, p.Height, p.FontSize)
		if p.FPS > 0 {
			line += fmt.Sprintf(" fps %d", p.FPS)
		}
		fmt.Println(line)
	}
}

func cleanFrames(cmd *cobra.Command, args []string) error {
	out := ""
	if len(args) == 1 {
		out = args[0]
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out = cfg.Recording.Output
	}
	if out == "" {
		var err error
		if out, err = vis.DefaultOutputPath(); err != nil {
			return err
		}
	}

	store := capture.ForOutput(out, config.DefaultQuality)
	n, err := store.Clean()
	if err != nil {
		return fmt.Errorf("clean %s: %w", store.Dir(), err)
	}
	fmt.Printf("removed %d frames from %s\n", n, store.Dir())
	return nil
}
