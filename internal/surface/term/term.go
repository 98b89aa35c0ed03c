package term

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/vis/internal/surface"
)

const (
	DefaultCols      = 120
	DefaultRows      = 34
	defaultThreshold = 96
	eventBuffer      = 256
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

type frameMsg string

// Terminal previews frames as braille art in the terminal. Drawing goes to an
// offscreen raster that is downsampled on every Present.
type Terminal struct {
	*surface.Offscreen

	cols, rows int
	threshold  uint32
	grid       *brailleGrid
	spec       surface.Spec

	input   io.Reader
	output  io.Writer
	program *tea.Program
	events  chan surface.Event
	done    chan error
	runErr  error
}

type Option func(*Terminal)

// WithSize sets the braille grid size in terminal cells.
func WithSize(cols, rows int) Option {
	return func(t *Terminal) {
		if cols > 0 {
			t.cols = cols
		}
		if rows > 0 {
			t.rows = rows
		}
	}
}

// WithThreshold sets the luminance (0-255) at which a dot is lit.
func WithThreshold(v uint32) Option {
	return func(t *Terminal) { t.threshold = v }
}

// WithIO replaces the terminal streams, mostly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *Terminal) {
		t.input = in
		t.output = out
	}
}

func New(opts ...Option) *Terminal {
	t := &Terminal{
		Offscreen: surface.NewOffscreen(),
		cols:      DefaultCols,
		rows:      DefaultRows,
		threshold: defaultThreshold,
		input:     os.Stdin,
		output:    os.Stdout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Name() string { return "term" }

func (t *Terminal) Open(spec surface.Spec) error {
	if err := t.Offscreen.Open(spec); err != nil {
		return err
	}
	t.spec = spec
	t.grid = newBrailleGrid(t.cols, t.rows)
	t.events = make(chan surface.Event, eventBuffer)
	t.done = make(chan error, 1)

	m := model{title: spec.Title, events: t.events, toPixel: t.toPixel}
	t.program = tea.NewProgram(m,
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	prog, done := t.program, t.done
	go func() {
		_, err := prog.Run()
		done <- err
		close(done)
	}()
	return nil
}

// toPixel maps a terminal cell inside the frame border to surface pixels.
func (t *Terminal) toPixel(cx, cy int) (int, int) {
	// title row above, one border cell around the grid
	cx, cy = cx-1, cy-2
	return cx * t.spec.Width / t.cols, cy * t.spec.Height / t.rows
}

func (t *Terminal) Present() error {
	if err := t.Offscreen.Present(); err != nil {
		return err
	}
	img, err := t.Offscreen.Snapshot()
	if err != nil {
		return err
	}
	t.grid.rasterize(img, t.threshold)
	t.program.Send(frameMsg(t.grid.String()))
	return nil
}

// PollEvents drains terminal input plus anything scripted on the raster.
func (t *Terminal) PollEvents() []surface.Event {
	events := t.Offscreen.PollEvents()
	for {
		select {
		case ev := <-t.events:
			events = append(events, ev)
		case err, ok := <-t.done:
			// the program exited on its own, e.g. lost its tty
			if ok {
				t.runErr = err
				events = append(events, surface.QuitEvent())
			}
			t.done = nil
			return events
		default:
			return events
		}
	}
}

func (t *Terminal) Close() error {
	runErr := t.runErr
	if t.program != nil {
		t.program.Quit()
		if t.done != nil {
			runErr = <-t.done
			t.done = nil
		}
		t.program = nil
	}
	if err := t.Offscreen.Close(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("term: %w", runErr)
	}
	return nil
}

// model is the Bubble Tea side. It only renders the latest frame and forwards
// input to the surface.
type model struct {
	title   string
	frame   string
	events  chan<- surface.Event
	toPixel func(cx, cy int) (int, int)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.send(surface.KeyEvent(surface.KeySpace))
		case "esc":
			m.send(surface.KeyEvent(surface.KeyEscape))
		case "q", "ctrl+c":
			m.send(surface.QuitEvent())
		}
	case tea.MouseMsg:
		x, y := m.toPixel(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionPress:
			m.send(surface.MouseEvent(true, x, y))
		case tea.MouseActionRelease:
			m.send(surface.MouseEvent(false, x, y))
		}
	}
	return m, nil
}

// send never blocks the UI goroutine; input beyond the buffer is dropped.
func (m model) send(ev surface.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m model) View() string {
	header := titleStyle.Render(m.title)
	status := statusStyle.Render("SPACE:pause  ESC/Q:quit  click:interact")
	return lipgloss.JoinVertical(lipgloss.Left, header, frameStyle.Render(m.frame), status)
}

// Compile-time check.
var _ surface.Surface = (*Terminal)(nil)
