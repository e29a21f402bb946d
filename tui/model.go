package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lribeiro/dexview/catalog"
	"github.com/lribeiro/dexview/client"
	"github.com/lribeiro/dexview/prefs"
)

type state int

const (
	stateLoading state = iota
	stateBrowsing
	stateDetail
	stateError
)

type detailTab int

const (
	tabInfo detailTab = iota
	tabMoves
	tabEvolution
)

// Options contains configuration for the Model.
type Options struct {
	Logger    *log.Logger
	Client    *client.Client
	Coord     *catalog.Coordinator
	Notices   *Notices
	Prefs     *prefs.Manager
	Favorites *prefs.Favorites
}

// Model is the Bubble Tea model for the catalog viewer.
type Model struct {
	// State
	state  state
	err    error
	cursor int

	// Data
	visible []client.Pokemon
	groups  []catalog.Group
	grouped bool

	// Detail view
	record    *client.Pokemon
	species   *client.Species
	stages    []catalog.Stage
	abilities []client.Ability
	activeTab detailTab
	moveGen   int

	// UI Components
	spinner   spinner.Model
	search    textinput.Model
	searching bool
	width     int
	height    int
	logger    *log.Logger

	// Services
	client    *client.Client
	coord     *catalog.Coordinator
	notices   *Notices
	prefs     *prefs.Manager
	favorites *prefs.Favorites
}

// NewModel creates a new Bubble Tea model.
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	search := textinput.New()
	search.Placeholder = "Buscar Pokémon..."
	search.CharLimit = 40
	search.Width = 30

	return Model{
		state:     stateLoading,
		spinner:   s,
		search:    search,
		logger:    opts.Logger,
		client:    opts.Client,
		coord:     opts.Coord,
		notices:   opts.Notices,
		prefs:     opts.Prefs,
		favorites: opts.Favorites,
	}
}

// Err returns the error if a fatal one occurred.
func (m Model) Err() error {
	return m.err
}

// selected returns the record under the cursor, nil when the list is
// empty.
func (m Model) selected() *client.Pokemon {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[m.cursor]
}

// refreshVisible re-derives the display list and clamps the cursor.
// With grouping on, the cursor walks the concatenation of the groups
// in section order.
func (m *Model) refreshVisible() {
	if m.grouped {
		m.groups = m.coord.GroupedList()
		var flat []client.Pokemon
		for _, g := range m.groups {
			flat = append(flat, g.Pokemon...)
		}
		m.visible = flat
	} else {
		m.groups = nil
		m.visible = m.coord.VisibleList()
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
