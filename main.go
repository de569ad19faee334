package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/df07/interactive-raytracer/pkg/frames"
	"github.com/df07/interactive-raytracer/pkg/input"
	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/df07/interactive-raytracer/pkg/scene"
	"github.com/pkg/errors"
)

// options are the command line settings of one run
type options struct {
	Scene     string
	ScenesDir string
	Width     int // 0 keeps the scene's size
	Height    int
	Out       string // bucket URL or directory
	Prefix    string // key prefix, empty for a random run ID
	Frames    int
	YawStep   float64 // degrees turned between frames
	Workers   int
}

// frameRecord is one entry of the stats.json manifest
type frameRecord struct {
	Key        string  `json:"key"`
	Yaw        float64 `json:"yaw"`
	HitPixels  int     `json:"hitPixels"`
	DurationMs float64 `json:"durationMs"`
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.Scene, "scene", "default", "Scene: a built-in name, file:<name> from -scenes-dir, or a path to a .yaml file")
	flag.StringVar(&opts.ScenesDir, "scenes-dir", "", "Directory of YAML scene files (default: ./scenes or ../scenes)")
	flag.IntVar(&opts.Width, "width", 0, "Image width (default: scene width)")
	flag.IntVar(&opts.Height, "height", 0, "Image height (default: scene height)")
	flag.StringVar(&opts.Out, "out", "file://output", "Output bucket URL or directory (file://, mem://, gs://)")
	flag.StringVar(&opts.Prefix, "prefix", "", "Key prefix for the frames (default: scene name + timestamp)")
	flag.IntVar(&opts.Frames, "frames", 1, "Number of frames to render")
	flag.Float64Var(&opts.YawStep, "yaw-step", 10, "Degrees the camera turns between frames")
	flag.IntVar(&opts.Workers, "workers", 0, "Render workers (0 = number of CPUs)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		printHelp()
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if opts.Prefix == "" {
		opts.Prefix = fmt.Sprintf("%s/%s", sanitize(opts.Scene), time.Now().Format("20060102_150405"))
	}

	keys, err := run(context.Background(), opts, logger)
	if err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
	logger.Info("render complete", "frames", len(keys), "out", opts.Out, "prefix", opts.Prefix)
}

func printHelp() {
	fmt.Println("Interactive Raytracer (offline frames)")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, info := range scene.BuiltinInfos() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Frames are written as <out>/<prefix>/frame_<n>.png with a stats.json manifest")
}

// createScene resolves a scene and applies the size overrides
func createScene(opts options) (*scene.Config, error) {
	if opts.Scene == "" {
		return nil, errors.Wrap(scene.ErrUnknownScene, "empty scene name")
	}
	cfg, err := scene.Resolve(opts.Scene, opts.ScenesDir)
	if err != nil {
		return nil, err
	}
	if opts.Width != 0 {
		cfg.Width = opts.Width
	}
	if opts.Height != 0 {
		cfg.Height = opts.Height
	}
	return cfg, nil
}

// run renders opts.Frames frames, turning the camera by opts.YawStep between
// them, and returns the keys written to the sink
func run(ctx context.Context, opts options, logger *slog.Logger) ([]string, error) {
	if opts.Frames < 1 {
		return nil, errors.Errorf("frames must be at least 1, got %d", opts.Frames)
	}

	cfg, err := createScene(opts)
	if err != nil {
		return nil, err
	}
	rt, camera, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = opts.Workers
	rt.SetRenderConfig(renderConfig)
	rt.SetLogger(renderer.NewSlogLogger(logger))

	sink, err := frames.OpenSink(ctx, opts.Out, opts.Prefix)
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	logger.Info("rendering", "scene", cfg.Name, "width", cfg.Width, "height", cfg.Height, "frames", opts.Frames)

	// Turning is driven through the pointer path: one pointer unit turns the
	// camera by the configured mouse sensitivity
	controller := input.NewController(camera)
	controller.ProcessMouse(0, 0)
	pointerStep := opts.YawStep / cfg.CameraConfig().MouseSensitivity
	pointerX := 0.0

	var keys []string
	var records []frameRecord
	for i := 0; i < opts.Frames; i++ {
		if i > 0 {
			pointerX += pointerStep
			controller.ProcessMouse(pointerX, 0)
		}

		stats := rt.Render(camera)
		data, width, height := rt.Frame()
		key, err := sink.WriteFrame(ctx, data, width, height)
		if err != nil {
			return keys, err
		}

		logger.Info("frame written",
			"key", key,
			"yaw", camera.Yaw(),
			"hitPixels", stats.HitPixels,
			"duration", stats.Duration,
			"pixelsPerSecond", int(stats.PixelsPerSecond()),
		)
		keys = append(keys, key)
		records = append(records, frameRecord{
			Key:        key,
			Yaw:        camera.Yaw(),
			HitPixels:  stats.HitPixels,
			DurationMs: float64(stats.Duration) / float64(time.Millisecond),
		})
	}

	if _, err := sink.WriteJSON(ctx, "stats.json", records); err != nil {
		return keys, err
	}
	return keys, nil
}

// sanitize turns a scene name or path into a single key segment
func sanitize(name string) string {
	name = strings.TrimSuffix(name, ".yaml")
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", ".", "_")
	return replacer.Replace(name)
}
