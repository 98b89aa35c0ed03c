package window

import (
	"fmt"
	"image"
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/vis/internal/surface"
)

// Window is a raylib desktop window. Frames are drawn into a render texture
// that is blitted to the screen on Present, so the last frame can be read
// back at any time.
type Window struct {
	spec    surface.Spec
	font    rl.Font
	ownFont bool
	target  rl.RenderTexture2D
	open    bool
	closed  bool
	drawing bool
}

func New() *Window {
	return &Window{}
}

func (w *Window) Name() string { return "window" }

// Open creates the window, the render texture and loads the font. raylib's
// own frame limiter is disabled; the View paces frames.
func (w *Window) Open(spec surface.Spec) error {
	if w.closed {
		return surface.ErrClosed
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", spec.Width, spec.Height)
	}
	if spec.FontPath != "" {
		if _, err := os.Stat(spec.FontPath); err != nil {
			return fmt.Errorf("window: load font: %w", err)
		}
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(spec.Width), int32(spec.Height), spec.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("window: failed to initialize %dx%d window", spec.Width, spec.Height)
	}
	rl.SetTargetFPS(0)
	rl.SetExitKey(0)

	w.font = loadFont(spec.FontPath, spec.FontSize)
	w.ownFont = spec.FontPath != ""
	w.target = rl.LoadRenderTexture(int32(spec.Width), int32(spec.Height))
	w.spec = spec
	w.open = true
	return nil
}

// loadFont loads the font at path with bilinear filtering, or raylib's
// built-in font when path is empty.
func loadFont(path string, size int) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, int32(size), nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func (w *Window) BeginFrame() {
	if !w.open || w.drawing {
		return
	}
	rl.BeginTextureMode(w.target)
	w.drawing = true
}

func (w *Window) Present() error {
	if w.closed {
		return surface.ErrClosed
	}
	if !w.open {
		return surface.ErrNotOpen
	}
	if w.drawing {
		rl.EndTextureMode()
		w.drawing = false
	}
	width, height := float32(w.spec.Width), float32(w.spec.Height)

	rl.BeginDrawing()
	// render textures are stored bottom-up
	rl.DrawTextureRec(w.target.Texture, rl.NewRectangle(0, 0, width, -height), rl.NewVector2(0, 0), rl.White)
	rl.EndDrawing()
	return nil
}

// PollEvents reports input gathered by the last Present. raylib polls input
// inside EndDrawing.
func (w *Window) PollEvents() []surface.Event {
	if !w.open {
		return nil
	}
	var events []surface.Event
	if rl.WindowShouldClose() {
		events = append(events, surface.QuitEvent())
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		events = append(events, surface.KeyEvent(surface.KeySpace))
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		events = append(events, surface.KeyEvent(surface.KeyEscape))
	}

	mouse := rl.GetMousePosition()
	x, y := int(mouse.X), int(mouse.Y)
	for _, b := range []rl.MouseButton{rl.MouseLeftButton, rl.MouseRightButton, rl.MouseMiddleButton} {
		if rl.IsMouseButtonPressed(b) {
			events = append(events, surface.MouseEvent(true, x, y))
		}
		if rl.IsMouseButtonReleased(b) {
			events = append(events, surface.MouseEvent(false, x, y))
		}
	}
	return events
}

func (w *Window) Snapshot() (image.Image, error) {
	if w.closed {
		return nil, surface.ErrClosed
	}
	if !w.open {
		return nil, surface.ErrNotOpen
	}
	img := rl.LoadImageFromTexture(w.target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	return img.ToImage(), nil
}

func (w *Window) Close() error {
	if w.closed || !w.open {
		w.closed = true
		return nil
	}
	w.closed = true
	if w.drawing {
		rl.EndTextureMode()
		w.drawing = false
	}
	rl.UnloadRenderTexture(w.target)
	if w.ownFont {
		rl.UnloadFont(w.font)
	}
	rl.CloseWindow()
	return nil
}

func toColor(c color.Color) rl.Color {
	n := surface.RGBA(c)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func (w *Window) fontSize() float32 {
	if w.spec.FontSize <= 0 {
		return 16
	}
	return float32(w.spec.FontSize)
}

func (w *Window) Clear(c color.Color) {
	rl.ClearBackground(toColor(c))
}

func (w *Window) FillRect(x, y, width, height float64, c color.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(width), float32(height)), toColor(c))
}

func (w *Window) StrokeRect(x, y, width, height, thick float64, c color.Color) {
	rl.DrawRectangleLinesEx(rl.NewRectangle(float32(x), float32(y), float32(width), float32(height)), float32(thick), toColor(c))
}

func (w *Window) FillCircle(x, y, r float64, c color.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(c))
}

func (w *Window) Line(x1, y1, x2, y2, thick float64, c color.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x1), float32(y1)), rl.NewVector2(float32(x2), float32(y2)), float32(thick), toColor(c))
}

func (w *Window) Text(s string, x, y float64, c color.Color) {
	rl.DrawTextEx(w.font, s, rl.NewVector2(float32(x), float32(y)), w.fontSize(), 1, toColor(c))
}

func (w *Window) MeasureText(s string) (float64, float64) {
	if !w.open {
		return 0, 0
	}
	v := rl.MeasureTextEx(w.font, s, w.fontSize(), 1)
	return float64(v.X), float64(v.Y)
}
