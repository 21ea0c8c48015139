// whitted - Recursive ray tracer
// Renders a built-in or YAML-described scene to a PPM or PNG image.
//
// Preview controls:
//
//	Esc/Q  - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/whitted/internal/logger"
	"github.com/taigrr/whitted/pkg/render"
	"github.com/taigrr/whitted/pkg/scene"
)

// options holds the command-line flags.
type options struct {
	sceneName string
	outPath   string
	format    string
	workers   int
	width     int
	height    int
	fov       float64
	maxDepth  int
	preview   bool
	progress  bool
	logLevel  string
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "whitted [scene.yaml]",
		Short: "Render a scene with Whitted-style ray tracing",
		Long: "whitted casts one ray per pixel, shades hits with Phong lighting and shadow rays,\n" +
			"and follows reflection and refraction recursively. Without a scene file it renders\n" +
			"one of the built-in scenes: " + strings.Join(scene.BuiltinNames(), ", ") + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path, cmd.Flags().Changed, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.sceneName, "scene", "s", "whitted", "Built-in scene to render when no file is given")
	f.StringVarP(&opts.outPath, "out", "o", "binary.ppm", "Output image path")
	f.StringVarP(&opts.format, "format", "f", "", "Output format: ppm or png (default from the output extension)")
	f.IntVarP(&opts.workers, "workers", "j", 1, "Number of goroutines rendering rows")
	f.IntVar(&opts.width, "width", 0, "Override image width")
	f.IntVar(&opts.height, "height", 0, "Override image height")
	f.Float64Var(&opts.fov, "fov", 0, "Override vertical field of view in degrees")
	f.IntVar(&opts.maxDepth, "max-depth", 0, "Override maximum recursion depth")
	f.BoolVarP(&opts.preview, "preview", "p", false, "Show the result in the terminal after rendering")
	f.BoolVar(&opts.progress, "progress", true, "Show a progress bar on stderr")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

// run renders and saves the image. Logs and the progress bar go to errOut.
func run(ctx context.Context, opts *options, path string, changed func(string) bool, errOut io.Writer) error {
	log := logger.New(errOut, opts.logLevel)

	format, err := outputFormat(opts.format, opts.outPath)
	if err != nil {
		return err
	}

	s, err := loadScene(opts, path, changed, log)
	if err != nil {
		return err
	}
	log.Infof("rendering %dx%d, %d objects, %d lights, max depth %d",
		s.Width, s.Height, len(s.Objects()), len(s.Lights()), s.MaxDepth)

	renderOpts := []render.Option{render.WithWorkers(opts.workers)}
	var bar *progressBar
	stopBar := func() {}
	if opts.progress {
		bar = newProgressBar(errOut, s.Height, 30)
		renderOpts = append(renderOpts, render.WithProgress(bar.Report))
		barCtx, cancel := context.WithCancel(ctx)
		barDone := make(chan struct{})
		go func() {
			bar.Run(barCtx)
			close(barDone)
		}()
		stopBar = func() {
			cancel()
			<-barDone
		}
	}

	start := time.Now()
	fb, err := render.Render(ctx, s, renderOpts...)
	stopBar()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Infof("rendered in %v", time.Since(start).Round(time.Millisecond))

	switch format {
	case "png":
		err = fb.SavePNG(opts.outPath)
	default:
		err = fb.SavePPM(opts.outPath)
	}
	if err != nil {
		return err
	}
	log.Infof("wrote %s", opts.outPath)

	if opts.preview {
		return preview(ctx, fb)
	}
	return nil
}

// loadScene builds the scene from a file or a built-in name, applying the
// flag overrides the user set explicitly.
func loadScene(opts *options, path string, changed func(string) bool, log *logger.Logger) (*scene.Scene, error) {
	cfg := scene.DefaultConfig()
	var file *scene.File
	if path != "" {
		f, err := scene.ReadFile(path)
		if err != nil {
			return nil, err
		}
		file = f
		cfg = f.Config(log)
		log.Debugf("loaded scene file %s", path)
	}

	if changed("width") {
		cfg.Width = opts.width
	}
	if changed("height") {
		cfg.Height = opts.height
	}
	if changed("fov") {
		cfg.FOV = opts.fov
	}
	if changed("max-depth") {
		cfg.MaxDepth = opts.maxDepth
	}

	if file != nil {
		return file.Build(cfg, log)
	}
	return scene.Builtin(opts.sceneName, cfg)
}

func outputFormat(format, path string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if format == "" {
			format = "ppm"
		}
	}
	switch format {
	case "ppm", "png":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use ppm or png)", format)
	}
}

// preview shows the framebuffer in the alternate screen until a quit key.
func preview(ctx context.Context, fb *render.Framebuffer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	view := render.NewPreview(fb)
	draw := func() error {
		term.Draw(view)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				if err := draw(); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				if ev.MatchString("esc", "escape", "q", "ctrl+c") {
					return nil
				}
			}
		}
	}
}
