package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/components/dropdown"
	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/components/input"
	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/components/list"
	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/messages"
	"github.com/agora-labs/agora-cli/internal/adapters/driving/tui/styles"
	"github.com/agora-labs/agora-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// searchInput is the query input component.
	searchInput *input.SearchInput

	// resultList displays aggregated search results.
	resultList *list.ResultList

	// previewPanel shows the debounced dropdown preview.
	previewPanel *dropdown.Panel

	// state is the latest search state snapshot from the store.
	state domain.SearchState

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		searchInput:  input.NewSearchInput(s),
		resultList:   list.NewResultList(s),
		previewPanel: dropdown.NewPanel(s),
		state:        ports.Store.State(),
	}
	app.searchInput.SetValue(app.state.Query)
	app.resultList.SetResponse(app.state.Response)
	return app, nil
}

// WithContext sets the cancellation context for searches.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return a.searchInput.Init()
}

// Update handles incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.searchInput.SetWidth(msg.Width)
		a.resultList.SetSize(msg.Width, msg.Height-8)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StateUpdated:
		a.state = msg.State
		a.resultList.SetResponse(msg.State.Response)
		return a, nil

	case messages.DropdownUpdated:
		a.previewPanel.SetState(msg.State)
		return a, nil

	case messages.SearchSettled:
		// Results and errors arrive through StateUpdated.
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyEsc:
		switch {
		case a.previewPanel.Visible():
			a.ports.Dropdown.Close()
			a.previewPanel.SetState(a.ports.Dropdown.State())
		case a.searchInput.Value() != "" || a.state.Response != nil:
			a.ports.Store.ClearSearch()
			a.searchInput.SetValue("")
		default:
			return a, tea.Quit
		}
		return a, nil

	case tea.KeyEnter:
		query := a.searchInput.Value()
		if domain.IsBlankQuery(query) {
			return a, nil
		}
		a.ports.Dropdown.Close()
		a.previewPanel.SetState(a.ports.Dropdown.State())
		return a, a.submitCmd(query)

	case tea.KeyUp, tea.KeyDown:
		a.resultList, _ = a.resultList.Update(msg)
		return a, nil
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	after := a.searchInput.Value()

	if after != before {
		a.ports.Store.SetQuery(after)
		a.ports.Dropdown.SetQuery(a.ctx, after)
	}
	return a, cmd
}

// submitCmd runs a full search off the update loop. State changes flow
// back through the store subscription.
func (a *App) submitCmd(query string) tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Store.PerformSearch(a.ctx, query, true)
		return messages.SearchSettled{Err: err}
	}
}

// View renders the application.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	sections := []string{
		a.styles.Title.Render("Agora"),
		"",
		a.searchInput.View(),
	}

	if a.previewPanel.Visible() {
		sections = append(sections, a.previewPanel.View())
	}

	sections = append(sections, "", a.bodyView(), "", a.helpView())
	return joinNonEmpty(sections)
}

func (a *App) bodyView() string {
	switch a.state.Status {
	case domain.StatusSearching:
		return a.styles.Muted.Render("Searching…")
	case domain.StatusFailed:
		return a.styles.Error.Render(a.state.Error)
	case domain.StatusSucceeded:
		return a.resultList.View()
	default:
		return a.historyView()
	}
}

func (a *App) historyView() string {
	if len(a.state.History) == 0 {
		return a.styles.Muted.Render("Type to search.")
	}

	out := a.styles.Subtitle.Render("Recent searches") + "\n"
	for i := range a.state.History {
		out += a.styles.Normal.Render(fmt.Sprintf("  %s", a.state.History[i].Query)) +
			a.styles.Muted.Render(fmt.Sprintf("  (%d results)", a.state.History[i].ResultCount)) + "\n"
	}
	return out
}

func (a *App) helpView() string {
	return a.styles.Help.Render("enter: search  ↑/↓: navigate  esc: clear  ctrl+c: quit")
}

func joinNonEmpty(sections []string) string {
	out := ""
	for _, s := range sections {
		if out != "" {
			out += "\n"
		}
		out += s
	}
	return out
}

// State returns the current search state snapshot (for tests).
func (a *App) State() domain.SearchState {
	return a.state
}

// Query returns the current input value (for tests).
func (a *App) Query() string {
	return a.searchInput.Value()
}
