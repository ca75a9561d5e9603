package game

import (
	"fmt"
	"time"

	"collide2d/internal/audio"
	"collide2d/internal/camera"
	"collide2d/internal/components"
	"collide2d/internal/engine"
	"collide2d/internal/geom"
	"collide2d/internal/logging"
	"collide2d/internal/motion"
	"collide2d/internal/physics"
	"collide2d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const (
	shotSpeed    float32 = 420
	shotRadius   float32 = 8
	shotCooldown         = 0.15
	shotLifetime float32 = 4
	savePath             = "assets/scenes/saved.yaml"
)

var (
	outlineIdle      = rl.White
	outlineColliding = rl.Red
	background       = rl.NewColor(20, 20, 30, 255)
)

// Game is the windowed sandbox: keyboard-driven player, click-to-shoot balls and a
// collision debug overlay.
type Game struct {
	World     *world.World
	Player    *engine.Entity
	Camera    *camera.Follow
	Sound     *audio.Player
	DebugMode bool
	Paused    bool

	ScenePath string // Reloaded with F9

	logger       *zap.Logger
	shotCounter  int
	lastShotTime float64
	shots        []shot
	clock        float32 // Simulated seconds, stops while paused
	enters       int

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// shot is a spawned ball and the sim time it is removed at.
type shot struct {
	entity  *engine.Entity
	expires float32
}

func New(w *world.World, logger *zap.Logger) *Game {
	logger = logging.OrNop(logger)
	g := &Game{
		World:     w,
		Camera:    camera.New(w.Config.Window.Width, w.Config.Window.Height),
		Sound:     audio.New(),
		DebugMode: true,
		logger:    logger,
	}
	w.Physics.OnEnter.AddListener(func(c physics.Contact) {
		g.enters++
		g.Sound.Hit(c.Point())
	})
	return g
}

func (g *Game) Run() {
	win := g.World.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.World.Config.Sim.TickRate))

	if err := g.Sound.Init(); err != nil {
		g.logger.Warn("Game: audio unavailable", zap.Error(err))
	}
	defer g.Sound.Close()

	g.Player = g.World.Player()
	if g.Player == nil {
		g.Player = g.createPlayer()
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) createPlayer() *engine.Entity {
	player := engine.NewEntity("player")
	player.Tags = []string{"player"}
	player.Transform.Position = rl.Vector2{
		X: float32(g.World.Config.Window.Width) / 2,
		Y: float32(g.World.Config.Window.Height) / 2,
	}
	player.Collider = components.NewCollider(geom.NewCircle(24))
	player.Collider.DebugColor = rl.Gold
	player.Kinematics = components.NewKinematics()
	player.Kinematics.Behavior = components.Accelerate
	player.Kinematics.Mass = 2
	player.Kinematics.Drag = 2.5
	g.World.Spawn(player)
	return player
}

func readInput() motion.Input {
	return motion.Input{
		Up:    rl.IsKeyDown(rl.KeyW),
		Down:  rl.IsKeyDown(rl.KeyS),
		Left:  rl.IsKeyDown(rl.KeyA),
		Right: rl.IsKeyDown(rl.KeyD),
	}
}

// ApplyInput sets the player's thrust for this frame.
func (g *Game) ApplyInput(in motion.Input) {
	if g.Player == nil || g.Player.Kinematics == nil {
		return
	}
	g.Player.Kinematics.Acceleration = in.Acceleration(motion.PlayerAcceleration)
}

func (g *Game) Update() {
	updateStart := time.Now()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.Paused = !g.Paused
	}
	if rl.IsKeyPressed(rl.KeyF9) && g.ScenePath != "" {
		if err := g.ReloadScene(); err != nil {
			g.logger.Error("Game: reload scene failed", zap.Error(err))
		}
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		if err := g.World.SaveScene(savePath); err != nil {
			g.logger.Error("Game: save scene failed", zap.Error(err))
		} else {
			g.logger.Info("Game: scene saved", zap.String("path", savePath))
		}
	}

	g.ApplyInput(readInput())

	if rl.IsMouseButtonDown(rl.MouseLeftButton) && rl.GetTime()-g.lastShotTime >= shotCooldown && g.Player != nil {
		g.Shoot(g.Camera.ScreenToWorld(rl.GetMousePosition()))
		g.lastShotTime = rl.GetTime()
	}

	dt := rl.GetFrameTime()
	if !g.Paused {
		g.advance(g.World.Step(dt))
	}
	g.follow(rl.GetMouseWheelMove(), dt)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// advance moves the sandbox clock by the delta the world used and retires old shots.
func (g *Game) advance(dt float32) {
	g.clock += dt
	live := g.shots[:0]
	for _, s := range g.shots {
		if g.clock >= s.expires {
			g.World.Despawn(s.entity)
			continue
		}
		live = append(live, s)
	}
	clear(g.shots[len(live):])
	g.shots = live
}

// ReloadScene replaces the world's entities with a fresh copy of ScenePath.
func (g *Game) ReloadScene() error {
	if err := g.World.ReplaceScene(g.ScenePath); err != nil {
		return err
	}
	g.shots = nil
	g.Player = g.World.Player()
	if g.Player == nil {
		g.Player = g.createPlayer()
	}
	g.logger.Info("Game: scene reloaded", zap.String("path", g.ScenePath), zap.Int("entities", g.World.Scene.Len()))
	return nil
}

// follow keeps the camera and the audio listener on the player.
func (g *Game) follow(wheel, dt float32) {
	if g.Player == nil {
		return
	}
	g.Camera.Update(g.Player.Transform.Position, wheel, dt)
	g.Sound.SetListener(g.Player.Transform.Position)
}

// Shoot spawns a ball just outside the player's collider, flying toward target.
func (g *Game) Shoot(target rl.Vector2) *engine.Entity {
	g.shotCounter++

	from := g.Player.Transform.Position
	dir := geom.NormalizeOr(rl.Vector2Subtract(target, from), geom.FallbackAxis)
	reach := shotRadius + 2
	if c := g.Player.Collider; c != nil {
		reach += c.Bounds(g.Player.Transform).Size().X / 2
	}

	ball := engine.NewEntity(fmt.Sprintf("Shot_%d", g.shotCounter))
	ball.Tags = []string{"shot"}
	ball.Transform.Position = rl.Vector2Add(from, rl.Vector2Scale(dir, reach))
	ball.Collider = components.NewCollider(geom.NewCircle(shotRadius))
	ball.Collider.DebugColor = rl.Orange
	ball.Kinematics = components.NewKinematics()
	ball.Kinematics.Mass = 0.5
	ball.Kinematics.Velocity = rl.Vector2Scale(dir, shotSpeed)
	g.World.Spawn(ball)
	g.shots = append(g.shots, shot{entity: ball, expires: g.clock + shotLifetime})
	return ball
}

// OutlineColor is the debug overlay color for an entity's collider.
func OutlineColor(e *engine.Entity) rl.Color {
	if e.IsColliding() {
		return outlineColliding
	}
	return outlineIdle
}

func (g *Game) Draw() {
	drawStart := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(background)

	rl.BeginMode2D(g.Camera.GetRaylibCamera())
	for _, e := range g.World.Scene.Entities() {
		if e.Active && e.Collider != nil {
			drawCollider(e, e.Collider.DebugColor, true)
		}
	}
	if g.DebugMode {
		g.drawDebug()
	}
	rl.EndMode2D()

	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
	g.DrawUI()
	rl.EndDrawing()
}

func drawCollider(e *engine.Entity, color rl.Color, filled bool) {
	c := e.Collider
	switch c.Shape.Kind {
	case geom.Circle:
		center, r := c.Center(e.Transform), c.Radius(e.Transform)
		if filled {
			rl.DrawCircleV(center, r, color)
		} else {
			rl.DrawCircleLinesV(center, r, color)
		}
	default:
		pts := c.Points(e.Transform)
		for i, p := range pts {
			rl.DrawLineV(p, pts[(i+1)%len(pts)], color)
		}
	}
}

func (g *Game) drawDebug() {
	for _, e := range g.World.Scene.Entities() {
		if !e.Active || e.Collider == nil {
			continue
		}
		drawCollider(e, OutlineColor(e), false)
		rl.DrawRectangleLinesEx(e.Collider.Bounds(e.Transform).Rectangle(), 1, rl.Fade(rl.DarkGray, 0.6))

		if k := e.Kinematics; k != nil {
			center := e.Collider.Center(e.Transform)
			rl.DrawLineV(center, rl.Vector2Add(center, rl.Vector2Scale(k.Velocity, 0.1)), rl.Green)
			if k.HasTarget {
				rl.DrawLineV(center, k.Target, rl.Fade(rl.SkyBlue, 0.4))
			}
		}
	}
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, click to shoot, Space to pause", 10, 10, 20, rl.LightGray)
	rl.DrawText("F1 debug view, F5 save, F9 reload scene, wheel to zoom", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if g.DebugMode {
		st := g.World.Physics.Stats()
		rl.DrawText(fmt.Sprintf("Entities: %d  Pairs: %d", st.Entities, st.Pairs), 10, 85, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Broad rejected: %d  Narrow: %d  Hits: %d", st.BroadRejected, st.NarrowTested, st.Hits), 10, 105, 16, rl.Yellow)
		rl.DrawText(fmt.Sprintf("Contacts started: %d  Shots: %d", g.enters, len(g.shots)), 10, 125, 16, rl.Yellow)
		if g.Player != nil && g.Player.Kinematics != nil {
			rl.DrawText(fmt.Sprintf("Player speed: %.0f", g.Player.Kinematics.Speed()), 10, 145, 16, rl.Yellow)
			tag := g.Camera.WorldToScreen(g.Player.Transform.Position)
			rl.DrawText(g.Player.Name, int32(tag.X)+12, int32(tag.Y)-28, 14, rl.White)
		}
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), 10, 170, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, 190, 16, rl.Green)
	}
	if g.Paused {
		rl.DrawText("PAUSED", int32(rl.GetScreenWidth())/2-50, 20, 24, rl.Red)
	}
}
