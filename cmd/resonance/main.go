package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/resonance/audio"
	"github.com/lixenwraith/resonance/clock"
	"github.com/lixenwraith/resonance/engine"
	"github.com/lixenwraith/resonance/parameter"
	"github.com/lixenwraith/resonance/terminal"
)

var (
	textFlag     = flag.String("text", "", "Text to play on start")
	dynamicsFlag = flag.Int("dynamics", parameter.DefaultDynamics, "Initial dynamics, 0-100")
	tempoFlag    = flag.Int("tempo", parameter.DefaultTempo, "Initial tempo, 0-100")
	fpsFlag      = flag.Int("fps", 0, "Frame rate override")
	muteFlag     = flag.Bool("mute", false, "Run without audio")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/resonance.log")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg := parameter.LoadConfig()
	if *fpsFlag > 0 {
		cfg.FPS = *fpsFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	audioCfg := audio.LoadConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the program crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRESONANCE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	// Normal exit terminal cleanup
	defer screen.Fini()

	screen.HideCursor()
	screen.Clear()

	live := parameter.NewLive()
	live.SetDynamics(*dynamicsFlag)
	live.SetTempo(*tempoFlag)

	clk := clock.NewSystem()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	out := audio.NewEngine(audioCfg, rand.New(rand.NewSource(rng.Int63())))

	surface := terminal.NewSurface(screen, cfg.CellWidth, cfg.CellHeight)
	session := engine.NewSession(cfg, live, out, clk, rng, surface.Viewport())
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("resonance: close: %v", err)
		}
	}()

	h := newHUD(cfg.MaxChars, cfg.FPS, clk.Now, func() hudState {
		return hudState{Live: live.Snapshot(), State: session.State(), Hue: session.Store().Hue()}
	})
	surface.SetOverlay(h.draw)
	a := newApp(session, surface, h, clk)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mRENDER LOOP CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		renderDone <- session.Run(ctx, surface)
	}()

	if *textFlag != "" {
		h.setInput(*textFlag)
		session.SubmitText(h.text())
	}

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				cancel()
				if err := <-renderDone; err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("resonance: render loop: %v", err)
				}
				return
			}
		case err := <-renderDone:
			log.Printf("resonance: render loop stopped: %v", err)
			return
		}
	}
}
