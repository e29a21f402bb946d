package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lribeiro/dexview/catalog"
	"github.com/lribeiro/dexview/client"
)

// settleDelay is how long the viewer waits after startup or a region
// change before background preloading kicks in.
const settleDelay = 500 * time.Millisecond

// refreshInterval drives the periodic re-render that surfaces preload
// progress.
const refreshInterval = 250 * time.Millisecond

// Init starts the spinner, the first batch load, and the settle timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadMore(), settleTick())
}

// Update handles all state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case settleMsg:
		m.coord.StartPreloading()
		return m, refreshTick()

	case refreshMsg:
		m.refreshVisible()
		return m, refreshTick()

	case batchLoadedMsg:
		if msg.err != nil {
			if m.state == stateLoading {
				m.err = msg.err
				m.state = stateError
			}
			return m, nil
		}
		if m.state == stateLoading {
			m.state = stateBrowsing
		}
		m.refreshVisible()
		return m, nil

	case regionChangedMsg:
		m.coord.SetRegion(msg.region)
		m.notices.Clear()
		m.cursor = 0
		m.visible = nil
		m.groups = nil
		m.search.SetValue("")
		m.searching = false
		m.state = stateLoading
		return m, tea.Batch(m.loadMore(), settleTick())

	case detailLoadedMsg:
		if msg.err != nil && msg.record == nil {
			m.logger.Error("detail load failed", "error", msg.err)
			m.notices.LoadFailed(msg.err)
			return m, nil
		}
		m.record = msg.record
		m.species = msg.species
		m.stages = msg.stages
		m.abilities = msg.abilities
		m.activeTab = tabInfo
		m.moveGen = 0
		m.state = stateDetail
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch m.state {
	case stateBrowsing:
		return m.handleBrowsingKey(msg)
	case stateDetail:
		return m.handleDetailKey(msg)
	case stateError:
		if msg.String() == "q" || msg.String() == "esc" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleSearchKey routes keystrokes into the search field and pushes
// the value into the name filter on every change.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.coord.SetNameFilter("")
		m.refreshVisible()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.coord.SetNameFilter(m.search.Value())
	m.cursor = 0
	m.refreshVisible()
	return m, cmd
}

func (m Model) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		// Nearing the bottom of the surfaced window triggers the next
		// scroll load.
		st := m.coord.State()
		if st.HasMore && !st.IsLoadingMore && m.cursor >= len(m.visible)-5 {
			return m, m.loadMore()
		}
		return m, nil

	case "enter":
		if p := m.selected(); p != nil {
			return m, m.loadDetail(*p)
		}
		return m, nil

	case "r":
		return m, func() tea.Msg {
			return regionChangedMsg{region: nextRegion(m.coord.State().Region)}
		}

	case "g":
		m.grouped = !m.grouped
		m.coord.SetGroupByType(m.grouped)
		m.cursor = 0
		m.refreshVisible()
		return m, nil

	case "s":
		st := m.coord.State()
		m.coord.SetSort(nextSortField(st.SortField), st.SortAscending)
		m.cursor = 0
		m.refreshVisible()
		return m, nil

	case "o":
		st := m.coord.State()
		m.coord.SetSort(st.SortField, !st.SortAscending)
		m.cursor = 0
		m.refreshVisible()
		return m, nil

	case "c", "esc":
		m.coord.ClearFilters()
		m.grouped = false
		m.search.SetValue("")
		m.notices.Clear()
		m.cursor = 0
		m.refreshVisible()
		return m, nil

	case "f":
		if p := m.selected(); p != nil {
			if _, err := m.favorites.Toggle(p.ID); err != nil {
				m.logger.Error("favorite toggle failed", "id", p.ID, "error", err)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "backspace":
		m.state = stateBrowsing
		m.record = nil
		m.species = nil
		m.stages = nil
		m.abilities = nil
		return m, nil

	case "tab":
		m.activeTab = (m.activeTab + 1) % 3
		return m, nil

	case "left", "h":
		if m.activeTab == tabMoves && m.moveGen > 0 {
			m.moveGen--
		}
		return m, nil

	case "right", "l":
		if m.activeTab == tabMoves && m.moveGen < len(catalog.MoveGenerations)-1 {
			m.moveGen++
		}
		return m, nil

	case "f":
		if m.record != nil {
			if _, err := m.favorites.Toggle(m.record.ID); err != nil {
				m.logger.Error("favorite toggle failed", "id", m.record.ID, "error", err)
			}
		}
		return m, nil
	}
	return m, nil
}

// loadMore runs one scroll-triggered batch load off the UI goroutine.
func (m Model) loadMore() tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		err := coord.LoadMore(context.Background())
		return batchLoadedMsg{err: err}
	}
}

// loadDetail resolves everything the detail view shows. The list
// snapshot carries no moves, so the record is refetched uncached when
// its move list is empty. Species, evolution and ability documents are
// best effort.
func (m Model) loadDetail(p client.Pokemon) tea.Cmd {
	api := m.client
	logger := m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		record := &p
		if len(p.Moves) == 0 {
			full, err := api.FetchDetails(ctx, api.DetailsURL(p.ID), false)
			if err != nil {
				return detailLoadedMsg{err: err}
			}
			record = full
		}

		msg := detailLoadedMsg{record: record}

		species, err := api.FetchSpecies(ctx, record.ID)
		if err != nil {
			logger.Debug("species load failed", "id", record.ID, "error", err)
		} else {
			msg.species = species
			if species.EvolutionChain.URL != "" {
				chain, err := api.FetchEvolutionChain(ctx, species.EvolutionChain.URL)
				if err != nil {
					logger.Debug("evolution chain load failed", "id", record.ID, "error", err)
				} else {
					msg.stages = catalog.FlattenEvolutionChain(chain)
				}
			}
		}

		for _, slot := range record.Abilities {
			ability, err := api.FetchAbility(ctx, slot.Ability.URL)
			if err != nil {
				logger.Debug("ability load failed", "name", slot.Ability.Name, "error", err)
				continue
			}
			msg.abilities = append(msg.abilities, *ability)
		}

		return msg
	}
}

func settleTick() tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleMsg{}
	})
}

func refreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func nextRegion(current catalog.Region) catalog.Region {
	for i, r := range catalog.Regions {
		if r.Key == current.Key {
			return catalog.Regions[(i+1)%len(catalog.Regions)]
		}
	}
	return catalog.DefaultRegion
}

func nextSortField(current catalog.SortField) catalog.SortField {
	for i, f := range catalog.SortFields {
		if f == current {
			return catalog.SortFields[(i+1)%len(catalog.SortFields)]
		}
	}
	return catalog.SortByID
}
