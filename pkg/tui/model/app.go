package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/logforge/pkg/core"
	"github.com/modoterra/logforge/pkg/transport/uds"
)

// Mode identifies the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
)

const tailLimit = 500

// App is the root Bubble Tea model for `logforge watch`.
type App struct {
	// Connection
	client     *uds.Client
	socketPath string
	connected  bool

	// State
	stats         []core.Stat
	tail          []core.Emission
	tailPaused    bool
	emitterPaused bool

	// Emissions pushed by the server land here from the client's read
	// goroutine and are drained back into the Bubble Tea loop.
	emissions chan core.Emission

	// UI
	mode      Mode
	filter    textinput.Model
	width     int
	height    int
	statusMsg string
}

// New creates a new watch TUI model.
func New(socketPath string) App {
	fi := textinput.New()
	fi.Placeholder = "filter..."
	fi.CharLimit = 64

	return App{
		socketPath: socketPath,
		emissions:  make(chan core.Emission, 64),
		filter:     fi,
		mode:       ModeNormal,
	}
}

// Init connects to the running emitter.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		connectCmd(a.socketPath),
		tea.SetWindowTitle("logforge"),
	)
}

// tickMsg triggers periodic stats refresh.
type tickMsg time.Time

// connectedMsg indicates successful emitter connection.
type connectedMsg struct{ client *uds.Client }

// statsMsg carries updated counters from the emitter.
type statsMsg struct{ stats []core.Stat }

// emissionMsg carries one fabricated line pushed by the emitter.
type emissionMsg core.Emission

// pausedMsg carries the emitter's paused state after Pause/Resume.
type pausedMsg struct{ paused bool }

// errorMsg carries an error to display.
type errorMsg struct{ err error }

func connectCmd(socketPath string) tea.Cmd {
	return func() tea.Msg {
		client, err := uds.Dial(socketPath)
		if err != nil {
			return errorMsg{err}
		}
		return connectedMsg{client}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchStatsCmd(client *uds.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		resp, err := client.Request(ctx, uds.MethodStats, nil)
		if err != nil {
			return errorMsg{err}
		}

		var stats []core.Stat
		if err := resp.UnmarshalData(&stats); err != nil {
			return errorMsg{err}
		}
		return statsMsg{stats}
	}
}

func pauseCmd(client *uds.Client, pause bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		method := uds.MethodResume
		if pause {
			method = uds.MethodPause
		}
		resp, err := client.Request(ctx, method, nil)
		if err != nil {
			return errorMsg{err}
		}

		var pr uds.PauseResponse
		if err := resp.UnmarshalData(&pr); err != nil {
			return errorMsg{err}
		}
		return pausedMsg{paused: pr.Paused}
	}
}

func waitEmissionCmd(ch chan core.Emission) tea.Cmd {
	return func() tea.Msg {
		return emissionMsg(<-ch)
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case connectedMsg:
		a.client = msg.client
		a.connected = true
		a.statusMsg = "connected"

		ch := a.emissions
		a.client.OnEvent(func(m uds.Message) {
			if m.Method != uds.EventEmitLine {
				return
			}
			var e core.Emission
			if err := m.UnmarshalData(&e); err != nil {
				return
			}
			select {
			case ch <- e:
			default:
			}
		})

		return a, tea.Batch(tickCmd(), fetchStatsCmd(a.client), waitEmissionCmd(a.emissions))

	case tickMsg:
		if a.client != nil {
			return a, tea.Batch(tickCmd(), fetchStatsCmd(a.client))
		}
		return a, tickCmd()

	case statsMsg:
		a.stats = msg.stats
		return a, nil

	case emissionMsg:
		if !a.tailPaused {
			a.tail = append(a.tail, core.Emission(msg))
			if len(a.tail) > tailLimit {
				a.tail = a.tail[len(a.tail)-tailLimit:]
			}
		}
		return a, waitEmissionCmd(a.emissions)

	case pausedMsg:
		a.emitterPaused = msg.paused
		if msg.paused {
			a.statusMsg = "emitter paused"
		} else {
			a.statusMsg = "emitter resumed"
		}
		return a, nil

	case errorMsg:
		a.statusMsg = "error: " + msg.err.Error()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter mode
	if a.mode == ModeFilter {
		switch msg.String() {
		case "esc":
			a.mode = ModeNormal
			a.filter.SetValue("")
			a.filter.Blur()
			return a, nil
		case "enter":
			a.mode = ModeNormal
			a.filter.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.filter, cmd = a.filter.Update(msg)
			return a, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.mode = ModeFilter
		a.filter.Focus()
		return a, textinput.Blink

	case " ":
		a.tailPaused = !a.tailPaused

	case "p":
		if a.client == nil {
			a.statusMsg = "not connected"
			return a, nil
		}
		return a, pauseCmd(a.client, !a.emitterPaused)
	}

	return a, nil
}

func (a App) filteredTail() []core.Emission {
	q := strings.ToLower(a.filter.Value())
	if q == "" {
		return a.tail
	}
	var filtered []core.Emission
	for _, e := range a.tail {
		if strings.Contains(strings.ToLower(e.Line), q) ||
			strings.Contains(strings.ToLower(string(e.Category)), q) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
