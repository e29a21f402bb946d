package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lribeiro/dexview/catalog"
	"github.com/lribeiro/dexview/client"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	favStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// View renders the UI based on the current state.
func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return fmt.Sprintf("\n  %s Loading Pokémon...\n", m.spinner.View())
	case stateError:
		return errorStyle.Render(fmt.Sprintf("\n  ✗ Error: %v\n\n  press q to quit\n", m.err))
	case stateDetail:
		return m.viewDetail()
	default:
		return m.viewBrowsing()
	}
}

func (m Model) viewBrowsing() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString("  " + m.search.View() + "\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("\n  Nenhum Pokémon encontrado\n"))
	} else {
		b.WriteString(m.viewList())
	}

	b.WriteString("\n" + m.viewStatusBar())
	return b.String()
}

func (m Model) viewHeader() string {
	st := m.coord.State()
	title := titleStyle.Render("dexview")
	region := headerStyle.Render(fmt.Sprintf("%s (#%d–#%d)", st.Region.Name, st.Region.Start, st.Region.End))
	sortDir := "↑"
	if !st.SortAscending {
		sortDir = "↓"
	}
	sortLabel := dimStyle.Render(fmt.Sprintf("sort: %s %s", st.SortField, sortDir))
	count := dimStyle.Render(fmt.Sprintf("%d results", len(m.visible)))
	return fmt.Sprintf("  %s  %s  %s  %s", title, region, sortLabel, count)
}

// viewList renders a window of rows around the cursor, with section
// headers when grouping is on.
func (m Model) viewList() string {
	rows := m.listRows()

	visible := m.height - 8
	if visible < 5 {
		visible = 15
	}

	// Find the cursor's row index to keep it inside the window.
	cursorRow := 0
	seen := 0
	for i, r := range rows {
		if r.index < 0 {
			continue
		}
		if seen == m.cursor {
			cursorRow = i
			break
		}
		seen++
	}

	start := 0
	if cursorRow >= visible {
		start = cursorRow - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	favs := m.favorites.List()

	var b strings.Builder
	for _, r := range rows[start:end] {
		if r.index < 0 {
			b.WriteString("\n  " + sectionStyle.Render(r.text) + "\n")
			continue
		}
		line := m.formatRow(m.visible[r.index], slices.Contains(favs, m.visible[r.index].ID))
		if r.index == m.cursor {
			b.WriteString("  " + selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

// listRow is either a record (index >= 0) or a section header.
type listRow struct {
	index int
	text  string
}

func (m Model) listRows() []listRow {
	var rows []listRow
	if m.grouped && len(m.groups) > 0 {
		i := 0
		for _, g := range m.groups {
			rows = append(rows, listRow{index: -1, text: fmt.Sprintf("%s (%d)", g.Label, len(g.Pokemon))})
			for range g.Pokemon {
				rows = append(rows, listRow{index: i})
				i++
			}
		}
		return rows
	}
	for i := range m.visible {
		rows = append(rows, listRow{index: i})
	}
	return rows
}

func (m Model) formatRow(p client.Pokemon, fav bool) string {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, catalog.TranslateType(t.Type.Name))
	}

	marker := " "
	if fav {
		marker = favStyle.Render("★")
	}

	return fmt.Sprintf("#%04d %s %-12s %-18s HP %3d  %5.1f kg  %4.1f m",
		p.ID, marker, p.Name, strings.Join(types, "/"),
		p.HP(), float64(p.Weight)/10, float64(p.Height)/10)
}

func (m Model) viewStatusBar() string {
	st := m.coord.State()

	var parts []string
	if st.IsLoadingMore {
		parts = append(parts, m.spinner.View()+" loading...")
	}
	if st.IsPreloading {
		label := fmt.Sprintf("%s preloading %d/%d", m.spinner.View(), st.PreloadOffset, st.Total)
		if st.SearchAccelerated {
			label += " (accelerated)"
		}
		parts = append(parts, label)
	}
	if notice := m.notices.Latest(); notice != "" {
		parts = append(parts, noticeStyle.Render(notice))
	}

	help := dimStyle.Render("  ↑/↓ move · enter detail · / search · r region · s sort · o order · g group · f fav · c clear · q quit")

	if len(parts) == 0 {
		return help + "\n"
	}
	return "  " + strings.Join(parts, "  ") + "\n" + help + "\n"
}

func (m Model) viewDetail() string {
	if m.record == nil {
		return ""
	}
	p := m.record

	var b strings.Builder

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, catalog.TranslateType(t.Type.Name))
	}
	fav := ""
	if m.favorites.Has(p.ID) {
		fav = " " + favStyle.Render("★")
	}
	b.WriteString(fmt.Sprintf("\n  %s%s\n", titleStyle.Render(fmt.Sprintf("#%04d %s", p.ID, p.Name)), fav))
	b.WriteString(fmt.Sprintf("  %s\n\n", headerStyle.Render(strings.Join(types, " / "))))

	b.WriteString("  " + m.viewDetailTabs() + "\n\n")

	switch m.activeTab {
	case tabMoves:
		b.WriteString(m.viewMoves())
	case tabEvolution:
		b.WriteString(m.viewEvolution())
	default:
		b.WriteString(m.viewInfo())
	}

	b.WriteString(dimStyle.Render("\n  tab switch · ←/→ generation · f fav · esc back\n"))
	return b.String()
}

func (m Model) viewDetailTabs() string {
	labels := []string{"Info", "Movimentos", "Evolução"}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if detailTab(i) == m.activeTab {
			rendered[i] = activeTabStyle.Render(label)
		} else {
			rendered[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(rendered, " ")
}

func (m Model) viewInfo() string {
	p := m.record
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  Altura: %.1f m    Peso: %.1f kg\n", float64(p.Height)/10, float64(p.Weight)/10))
	if p.BaseExperience != nil {
		b.WriteString(fmt.Sprintf("  Experiência base: %d\n", *p.BaseExperience))
	}
	b.WriteString("\n")

	for _, s := range p.Stats {
		bar := strings.Repeat("█", min(s.BaseStat/5, 40))
		b.WriteString(fmt.Sprintf("  %-16s %3d %s\n", s.Stat.Name, s.BaseStat, headerStyle.Render(bar)))
	}

	if len(m.abilities) > 0 {
		b.WriteString("\n  " + sectionStyle.Render("Habilidades") + "\n")
		for _, a := range m.abilities {
			desc := catalog.FlavorTextByLanguage(a.FlavorTextEntries, "pt-BR")
			b.WriteString(fmt.Sprintf("  • %s", a.Name))
			if desc != "" {
				b.WriteString(dimStyle.Render(": " + desc))
			}
			b.WriteString("\n")
		}
	}

	if m.species != nil {
		if flavor := catalog.FlavorTextByLanguage(m.species.FlavorTextEntries, "pt-BR"); flavor != "" {
			b.WriteString("\n  " + dimStyle.Render(flavor) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewMoves() string {
	grouped := catalog.GroupMovesByGeneration(m.record.Moves)
	gen := catalog.MoveGenerations[m.moveGen]

	var b strings.Builder
	tabs := make([]string, len(catalog.MoveGenerations))
	for i, g := range catalog.MoveGenerations {
		if i == m.moveGen {
			tabs[i] = activeTabStyle.Render(g)
		} else {
			tabs[i] = tabStyle.Render(g)
		}
	}
	b.WriteString("  " + strings.Join(tabs, "") + "\n\n")

	moves := grouped[gen]
	if len(moves) == 0 {
		b.WriteString(dimStyle.Render("  Nenhum movimento nesta geração\n"))
		return b.String()
	}

	limit := m.height - 14
	if limit < 5 {
		limit = 20
	}
	for i, mv := range moves {
		if i >= limit {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more\n", len(moves)-limit)))
			break
		}
		b.WriteString(fmt.Sprintf("  %s\n", mv.Move.Name))
	}
	return b.String()
}

func (m Model) viewEvolution() string {
	if len(m.stages) == 0 {
		return dimStyle.Render("  Sem evoluções\n")
	}

	var b strings.Builder
	for _, stage := range m.stages {
		indent := strings.Repeat("  ", stage.Level)
		marker := ""
		if stage.Level > 0 {
			marker = "↳ "
		}
		name := stage.Name
		if m.record != nil && stage.ID == m.record.ID {
			name = selectedStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("  %s%s%s (#%d)", indent, marker, name, stage.ID))
		if len(stage.Details) > 0 {
			labels := make([]string, 0, len(stage.Details))
			for _, d := range stage.Details {
				labels = append(labels, d.Label)
			}
			b.WriteString(dimStyle.Render("  [" + strings.Join(labels, ", ") + "]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
