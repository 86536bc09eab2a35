package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lumen/pkg/parallel"
	"github.com/taigrr/lumen/pkg/render"
)

const (
	zoomStep    = 1.1
	zoomFreq    = 6.0
	zoomDamping = 1.0
)

// Zoom eases the camera distance toward its target with a critically
// damped spring.
type Zoom struct {
	spring   harmonica.Spring
	Position float64
	velocity float64
	Target   float64
}

// NewZoom creates a zoom at rest at distance d.
func NewZoom(fps int, d float64) *Zoom {
	return &Zoom{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), zoomFreq, zoomDamping),
		Position: d,
		Target:   d,
	}
}

// In moves the target closer by one step.
func (z *Zoom) In() {
	z.Target = max(minDistance, z.Target/zoomStep)
}

// Out moves the target further by one step.
func (z *Zoom) Out() {
	z.Target = min(maxDistance, z.Target*zoomStep)
}

// Update advances the spring by one frame and returns the new distance.
func (z *Zoom) Update() float64 {
	z.Position, z.velocity = z.spring.Update(z.Position, z.velocity, z.Target)
	return z.Position
}

// HUD renders an overlay with model info and controls.
type HUD struct {
	filename  string
	triangles int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	Visible   bool
}

// NewHUD creates a new HUD
func NewHUD(filename string, triangles int) *HUD {
	return &HUD{
		filename:  filename,
		triangles: triangles,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the overlay onto scr: FPS and model info on the top row,
// shading mode and key help on the bottom row.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, mode render.ShadingMode, st render.Stats) {
	if !h.Visible || area.Max.Y-area.Min.Y < 2 {
		return
	}
	label := uv.Style{Fg: render.ColorWhite, Bg: render.ColorBlack}
	accent := uv.Style{Fg: render.ColorSky, Bg: render.ColorBlack}

	x := drawText(scr, area, area.Min.X, area.Min.Y, fmt.Sprintf(" %.0f FPS ", h.fps), accent)
	drawText(scr, area, x, area.Min.Y,
		fmt.Sprintf(" %s  %d tris  %d drawn  %v ", h.filename, h.triangles, st.Triangles-st.TrianglesCulled, st.Duration.Round(time.Millisecond)),
		label)

	y := area.Max.Y - 1
	x = drawText(scr, area, area.Min.X, y, " "+mode.String()+" ", accent)
	drawText(scr, area, x, y, " drag orbit  scroll zoom  g shading  x wire  r reset  ? hud  esc quit ", label)
}

// drawText writes s one cell per rune and returns the column after it.
func drawText(scr uv.Screen, area uv.Rectangle, x, y int, s string, style uv.Style) int {
	for _, r := range s {
		if x >= area.Max.X {
			break
		}
		scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
	return x
}

// viewer holds the interactive session state. All fields are owned by the
// goroutine running loop.
type viewer struct {
	cfg   *Config
	log   *slog.Logger
	term  *uv.Terminal
	r     *render.Renderer
	scene render.Scene

	cam   render.Camera
	ball  *render.Arcball
	zoom  *Zoom
	hud   *HUD
	solid render.ShadingMode // mode restored when leaving wireframe
}

func runViewer(ctx context.Context, cfg *Config, log *slog.Logger) error {
	pool := parallel.New(cfg.Workers)

	mesh, err := loadMesh(cfg)
	if err != nil {
		return err
	}
	scene, err := buildScene(ctx, pool, cfg, mesh)
	if err != nil {
		return err
	}
	name := cfg.Primitive
	if cfg.Model != "" {
		name = filepath.Base(cfg.Model)
	}
	log.Info("model loaded", "name", name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(), "workers", pool.Workers())

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			log.Warn("terminal shutdown", "err", err)
		}
	}()

	v := &viewer{
		cfg:   cfg,
		log:   log,
		term:  term,
		r:     newRenderer(cfg, pool, width, height*2),
		scene: scene,
		cam:   homeCamera(cfg.Distance),
		ball:  render.NewArcball(width, height*2),
		zoom:  NewZoom(cfg.FPS, cfg.Distance),
		hud:   NewHUD(name, mesh.TriangleCount()),
		solid: cfg.mode,
	}
	if v.solid == render.ShadingWireframe {
		v.solid = render.ShadingPhong
	}
	return v.loop(ctx)
}

func (v *viewer) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.FPS))
	defer ticker.Stop()

	events := v.term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if err := v.frame(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

// handle applies one input event and reports whether the viewer should quit.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.r.Resize(ev.Width, ev.Height*2)
		v.ball.Width, v.ball.Height = ev.Width, ev.Height*2
		v.log.Debug("resize", "cols", ev.Width, "rows", ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return true
		case ev.MatchString("g"):
			if v.r.Mode == render.ShadingWireframe {
				v.r.Mode = v.solid
			}
			v.r.Mode = v.r.Mode.Toggle()
			v.solid = v.r.Mode
		case ev.MatchString("x"):
			if v.r.Mode == render.ShadingWireframe {
				v.r.Mode = v.solid
			} else {
				v.r.Mode = render.ShadingWireframe
			}
		case ev.MatchString("r"):
			v.cam = homeCamera(v.cfg.Distance)
			v.zoom.Target = v.cfg.Distance
		case ev.MatchString("+", "="):
			v.zoom.In()
		case ev.MatchString("-", "_"):
			v.zoom.Out()
		case ev.MatchString("?", "shift+/"):
			v.hud.Visible = !v.hud.Visible
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			v.ball.Begin(cellToPixel(ev.X, ev.Y))
		}

	case uv.MouseMotionEvent:
		if v.ball.Dragging() {
			px, py := cellToPixel(ev.X, ev.Y)
			if axis, angle, ok := v.ball.Drag(px, py); ok {
				v.cam = render.OrbitCamera(v.cam, axis, angle)
			}
		}

	case uv.MouseReleaseEvent:
		v.ball.End()

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoom.In()
		case uv.MouseWheelDown:
			v.zoom.Out()
		}
	}
	return false
}

// cellToPixel maps a terminal cell to the center of its two half-block
// pixels.
func cellToPixel(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row*2) + 1
}

func (v *viewer) frame(ctx context.Context) error {
	v.cam = v.cam.WithDistance(v.zoom.Update())

	st, err := v.r.RenderFrame(ctx, v.scene, v.cam)
	if err != nil {
		return err
	}

	area := v.term.Bounds()
	v.r.Framebuffer().Draw(v.term, area)
	v.hud.UpdateFPS()
	v.hud.Draw(v.term, area, v.r.Mode, st)
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	v.log.Debug("frame",
		"mode", v.r.Mode,
		"distance", v.zoom.Position,
		"triangles", st.Triangles,
		"culled", st.TrianglesCulled,
		"fragments", st.Fragments,
		"accepted", st.FragmentsAccepted,
		"duration", st.Duration,
	)
	return nil
}
