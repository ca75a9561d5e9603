// collide-tty runs a scene in the terminal and beeps whenever two bodies start touching.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"collide2d/internal/audio"
	"collide2d/internal/config"
	"collide2d/internal/logging"
	"collide2d/internal/motion"
	"collide2d/internal/physics"
	"collide2d/internal/world"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Terminals report key presses but not releases, so a press steers for this long.
const steerHold = 150 * time.Millisecond

type viewer struct {
	screen tcell.Screen
	world  *world.World
	logger *zap.Logger

	steer     motion.Input
	steerTime time.Time
	paused    bool
	hits      int

	sound     *audio.Player
	scenePath string
}

func newViewer(w *world.World, scenePath string, logger *zap.Logger) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{screen: screen, world: w, logger: logger, sound: audio.New(), scenePath: scenePath}
	if err := v.sound.Init(); err != nil {
		// Non-fatal, the viewer runs silently
		logger.Warn("TTY: audio unavailable", zap.Error(err))
	}

	w.Physics.OnEnter.AddListener(func(c physics.Contact) {
		v.hits++
		v.sound.Hit(c.Point())
	})
	return v, nil
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return v.handleRune(ev.Rune(), time.Now())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// handleRune reports false when the viewer should quit.
func (v *viewer) handleRune(r rune, now time.Time) bool {
	switch r {
	case 'q':
		return false
	case 'p', ' ':
		v.paused = !v.paused
	case 'r':
		if err := v.world.ReplaceScene(v.scenePath); err != nil {
			v.logger.Error("TTY: reload scene failed", zap.Error(err))
		}
	case 'w':
		v.press(motion.Input{Up: true}, now)
	case 's':
		v.press(motion.Input{Down: true}, now)
	case 'a':
		v.press(motion.Input{Left: true}, now)
	case 'd':
		v.press(motion.Input{Right: true}, now)
	}
	return true
}

func (v *viewer) press(in motion.Input, now time.Time) {
	v.steer = in
	v.steerTime = now
}

func (v *viewer) applySteer(now time.Time) {
	player := v.world.Player()
	if player == nil || player.Kinematics == nil {
		return
	}
	if now.Sub(v.steerTime) > steerHold {
		v.steer = motion.Input{}
	}
	player.Kinematics.Acceleration = v.steer.Acceleration(motion.PlayerAcceleration)
	if v.sound != nil {
		v.sound.SetListener(player.Transform.Position)
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	view := newViewport(arena(v.world.Config), cols, rows-1)

	for _, e := range v.world.Scene.Entities() {
		if !e.Active || e.Collider == nil || !e.Collider.Enabled {
			continue
		}
		ch, style := glyph(e)
		for _, c := range view.outline(e) {
			v.screen.SetContent(c.x, c.y, ch, nil, style)
		}
	}

	st := v.world.Physics.Stats()
	status := fmt.Sprintf(" entities %d  pairs %d  narrow %d  touching %d  hits %d  tick %d ",
		st.Entities, st.Pairs, st.NarrowTested, st.Hits, v.hits, v.world.Ticks())
	if v.paused {
		status += " PAUSED "
	}
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, statusStyle)
	}

	v.screen.Show()
}

func (v *viewer) run() {
	tickRate := max(v.world.Config.Sim.TickRate, 1)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			v.applySteer(now)
			if !v.paused {
				v.world.Step(dt)
			}
			v.draw()
		}
	}
}

func (v *viewer) cleanup() {
	v.sound.Close()
	v.screen.Fini()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file")
	scenePath := flag.String("scene", "assets/scenes/arena.yaml", "scene file")
	logPath := flag.String("log", "collide-tty.log", "log file; the terminal is taken by the view")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Log.File = *logPath
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	w := world.New(cfg, logger)
	if err := w.LoadScene(*scenePath); err != nil {
		logger.Error("TTY: scene load failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}

	v, err := newViewer(w, *scenePath, logger.Named("tty"))
	if err != nil {
		logger.Error("TTY: terminal init failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
	logger.Info("TTY: exit", zap.Uint64("ticks", w.Ticks()), zap.Int("entities", w.Scene.Len()), zap.Int("hits", v.hits))
}
