package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/smart-road/audio"
	"github.com/lixenwraith/smart-road/config"
	"github.com/lixenwraith/smart-road/engine"
	"github.com/lixenwraith/smart-road/input"
	"github.com/lixenwraith/smart-road/render"
	"github.com/lixenwraith/smart-road/traffic"
)

var (
	configFlag    = flag.String("config", "", "Path to TOML settings file")
	debugFlag     = flag.Bool("debug", false, "Write debug log to logs/smart-road.log")
	muteFlag      = flag.Bool("mute", false, "Disable sound cues")
	seedFlag      = flag.Int64("seed", 0, "Seed for lane and random approach draws (0 = time based)")
	laneWidthFlag = flag.Int("lane-width", 0, "Lane width in pixels (0 = from settings)")
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

// overrides carries command-line values that take precedence over the file
type overrides struct {
	mute      bool
	seed      int64
	laneWidth int
}

// resolveSettings loads path (or defaults) and applies flag overrides
func resolveSettings(path string, o overrides) (config.Settings, error) {
	settings := config.Default()
	if path != "" {
		var err error
		if settings, err = config.Load(path); err != nil {
			return config.Settings{}, err
		}
	}

	if o.mute {
		settings.Audio.Enabled = false
	}
	if o.seed != 0 {
		settings.Seed = o.seed
	}
	if o.laneWidth != 0 {
		settings.Lanes.Width = o.laneWidth
	}

	if err := settings.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// applyColorMode steers tcell's truecolor detection before screen init
func applyColorMode(mode string) error {
	switch mode {
	case "auto", "":
		return nil
	case "256":
		return os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		return os.Setenv("TCELL_TRUECOLOR", "enable")
	}
	return fmt.Errorf("unknown color mode %q", mode)
}

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the simulation crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSMART-ROAD CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}
	log := logrus.WithField("component", "main")

	settings, err := resolveSettings(*configFlag, overrides{
		mute:      *muteFlag,
		seed:      *seedFlag,
		laneWidth: *laneWidthFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "smart-road: %v\n", err)
		os.Exit(1)
	}
	keys, err := input.LoadKeyTable(settings.Keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smart-road: %v\n", err)
		os.Exit(1)
	}
	if err := applyColorMode(*colorModeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "smart-road: %v\n", err)
		os.Exit(1)
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	lanes := settings.LaneConfig()
	log.WithFields(logrus.Fields{
		"seed":   seed,
		"width":  lanes.WindowWidth,
		"height": lanes.WindowHeight,
		"lane":   lanes.LaneWidth,
	}).Info("settings resolved")

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()

	// Goroutines started through engine.Go restore the terminal before exiting
	engine.SetCrashHandler(func(r any) {
		screen.Fini()
		// Use \r\n for raw mode compatibility to avoid zig-zag output
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSIMULATION CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})

	sim := traffic.New(lanes,
		traffic.WithRand(rand.New(rand.NewSource(seed))),
		traffic.WithLogger(logrus.WithField("component", "traffic")),
	)
	driver := engine.NewDriver(sim, engine.Options{
		TickInterval: settings.Timing.Tick.Duration,
		Debounce:     settings.Timing.Debounce.Duration,
		Logger:       logrus.WithField("component", "driver"),
	})

	renderer := render.NewTerminalRenderer(screen, lanes)
	driver.OnFrame(renderer.RenderFrame)

	if settings.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		} else {
			defer sm.Cleanup()
			driver.AddObserver(sm)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan traffic.Stats, 1)
	engine.Go(func() {
		result <- driver.Run(ctx)
		// Wake the event loop so it sees the result
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	stats := pollInput(screen, keys, driver, result)

	// Run has returned, the simulation has no other writer now
	report := sim.Report()
	log.WithFields(logrus.Fields{
		"passed":    stats.Passed,
		"give_ways": stats.GiveWays,
	}).Info("showing report")

	renderer.RenderReport(report)
	waitForDismiss(screen, renderer, report, settings.Timing.Debounce.Duration)

	screen.Fini()
	fmt.Println(report)
}

// pollInput forwards mapped keys to the driver until it finishes
func pollInput(screen tcell.Screen, keys *input.KeyTable, driver *engine.Driver, result <-chan traffic.Stats) traffic.Stats {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return <-result
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if req, ok := keys.Map(ev); ok {
				driver.Submit(req)
			}
		case *tcell.EventResize:
			screen.Sync()
		}

		select {
		case stats := <-result:
			return stats
		default:
		}
	}
}

// waitForDismiss blocks until a key arrives after the debounce window
// The window swallows repeats of the key that ended the run
func waitForDismiss(screen tcell.Screen, renderer *render.TerminalRenderer, report string, debounce time.Duration) {
	shownAt := time.Now()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev.(type) {
		case *tcell.EventKey:
			if time.Since(shownAt) > debounce {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
			renderer.RenderReport(report)
		}
	}
}
