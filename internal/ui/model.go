package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reposcout/internal/config"
	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
	"reposcout/internal/ui/coordinator"
	"reposcout/internal/ui/handlers"
	"reposcout/internal/ui/input"
	inputtypes "reposcout/internal/ui/input/types"
	"reposcout/internal/ui/logic"
	"reposcout/internal/ui/services/search"
	"reposcout/internal/ui/services/suggest"
	"reposcout/internal/ui/state"
	"reposcout/internal/ui/viewmodels"
	"reposcout/internal/ui/views"
)

// Options configure the search page
type Options struct {
	PerPageOptions []int
	DefaultPerPage int
	Suggest        suggest.Options
}

// OptionsFromConfig derives page options from the application config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PerPageOptions: cfg.UI.PerPageOptions,
		DefaultPerPage: cfg.UI.DefaultPerPage,
		Suggest: suggest.Options{
			Debounce:  cfg.SuggestDebounce(),
			MinLength: cfg.Suggest.MinLength,
		},
	}
}

// Model represents the UI state. It is also the coordinator's renderer:
// every render call arrives on the Bubble Tea goroutine, either from a key
// handled in Update or from a loop callback run by Update.
type Model struct {
	bus   eventbus.EventBus
	state *state.AppState // centralized state

	// UI-specific state not in AppState
	width    int
	height   int
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool

	// Search page and its stream wiring
	page  *binding.Page
	coord *coordinator.Coordinator
	loop  *stream.Loop

	// Bus events are forwarded through events into Update
	events      chan eventbus.DomainEvent
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe []func()

	// Handlers
	navigator    *logic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	helpRenderer *HelpRenderer

	copyToClipboard func(string) error
}

// NewModel creates a new UI model and starts its coordinator. Stream
// callbacks posted to loop are run by Update.
func NewModel(data coordinator.DataSource, loop *stream.Loop, bus eventbus.EventBus, opts Options) *Model {
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = domain.DefaultPerPage
	}
	if len(opts.PerPageOptions) == 0 {
		opts.PerPageOptions = []int{opts.DefaultPerPage}
	}

	appState := state.NewAppState()
	keys := DefaultKeyMap()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := &Model{
		bus:             bus,
		state:           appState,
		keys:            keys,
		help:            help.New(),
		spinner:         s,
		page:            binding.NewPage(opts.PerPageOptions, opts.DefaultPerPage),
		loop:            loop,
		events:          make(chan eventbus.DomainEvent, 64),
		done:            make(chan struct{}),
		navigator:       logic.NewNavigator(),
		renderer:        views.NewRenderer(),
		eventHandler:    handlers.NewEventHandler(appState),
		viewModel:       viewmodels.NewViewModel(appState),
		inputHandler:    input.New(),
		helpRenderer:    NewHelpRenderer(keys),
		copyToClipboard: clipboard.WriteAll,
	}

	m.coord = coordinator.NewCoordinator(m.page.Sources(), data, m, loop, bus, coordinator.Options{
		Suggest:        opts.Suggest,
		DefaultPerPage: opts.DefaultPerPage,
	})
	m.coord.Start()

	for _, t := range m.eventHandler.Subscriptions() {
		m.unsubscribe = append(m.unsubscribe, bus.Subscribe(t, m.forward))
	}

	return m
}

// forward hands a bus event to Update. It runs on the bus's goroutines.
func (m *Model) forward(e eventbus.DomainEvent) {
	select {
	case m.events <- e:
	case <-m.done:
	default:
		slog.Warn("ui event channel full, dropping event", "type", e.Type())
	}
}

// Close stops the coordinator and detaches from the bus
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		for _, unsub := range m.unsubscribe {
			unsub()
		}
		close(m.done)
		m.coord.Close()
	})
}

// Page returns the search page's input elements
func (m *Model) Page() *binding.Page {
	return m.page
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForLoop(m.loop), waitForEvent(m.events, m.done))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case loopEventMsg:
		msg.fn()
		cmds = append(cmds, waitForLoop(m.loop))

	case EventMsg:
		cmds = append(cmds, m.eventHandler.HandleEvent(msg.Event), waitForEvent(m.events, m.done))

	case handlers.ClearStatusMsg:
		m.eventHandler.ClearStatus(msg)

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case pagerClosedMsg:
		if msg.err != nil {
			slog.Warn("pager failed", "error", msg.err)
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
		}

	case copiedMsg:
		if msg.err != nil {
			slog.Warn("clipboard write failed", "error", msg.err)
			m.state.StatusMessage = fmt.Sprintf("Could not copy: %v", msg.err)
		} else {
			m.state.StatusMessage = "Copied " + msg.url
		}

	default:
		cmds = append(cmds, m.inputHandler.Update(msg))
	}

	cmds = append(cmds, m.afterUpdate()...)
	return m, tea.Batch(cmds...)
}

// afterUpdate reacts to render calls made while handling a message
func (m *Model) afterUpdate() []tea.Cmd {
	var cmds []tea.Cmd

	if m.state.Alert != "" && m.inputHandler.CurrentMode() != inputtypes.ModeAlert {
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.ChangeMode(inputtypes.ModeAlert, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.state.ClearSuggestions()
		m.updateViewportHeight()
	}

	if m.state.Loading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	return cmds
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.UpdateTextInput(*m.inputHandler.TextInput(), m.inputHandler.CurrentMode() == inputtypes.ModeKeyword)
	m.viewModel.SetPerPage(m.page.PerPage.Value())
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetHelpView(m.help.View(m.keys))

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	slog.Debug("processAction", "action", action.Type())

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		m.setKeyword(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Text != m.page.Keyword.Value() {
			m.setKeyword(a.Text)
		}
		m.state.ClearSuggestions()
		m.updateViewportHeight()
		m.search()

	case inputtypes.CancelTextAction:
		m.state.ClearSuggestions()
		m.updateViewportHeight()

	case inputtypes.SearchAction:
		m.search()

	case inputtypes.SortAction:
		switch a.Field {
		case domain.SortStars:
			m.page.SortStars.Click()
		case domain.SortForks:
			m.page.SortForks.Click()
		}

	case inputtypes.PageAction:
		if a.Step < 0 {
			m.page.PreviousPage.Click()
		} else {
			m.page.NextPage.Click()
		}

	case inputtypes.CyclePerPageAction:
		m.page.PerPage.Cycle()

	case inputtypes.SuggestionNavigateAction:
		m.state.MoveSuggestion(a.Delta)

	case inputtypes.AcceptSuggestionAction:
		if s, ok := m.state.HighlightedSuggestion(); ok {
			m.inputHandler.SetText(s.Text)
			m.setKeyword(s.Text)
			m.state.ClearSuggestions()
			m.updateViewportHeight()
		}

	case inputtypes.ShowDetailsAction:
		if repo, ok := m.state.SelectedRepository(); ok {
			return showInPager(RenderRepositoryDetails(repo))
		}

	case inputtypes.YankURLAction:
		if repo, ok := m.state.SelectedRepository(); ok {
			url := repo.HTMLURL
			write := m.copyToClipboard
			return func() tea.Msg {
				return copiedMsg{url: url, err: write(url)}
			}
		}

	case inputtypes.ToggleHelpAction:
		return showInPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.DismissAlertAction:
		m.state.DismissAlert()

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// setKeyword feeds an edit of the keyword line into the page
func (m *Model) setKeyword(text string) {
	m.state.Keyword = text
	m.page.Keyword.Set(text)
}

func (m *Model) search() {
	if !search.HasKeyword(m.state.Keyword) {
		m.state.StatusMessage = "Type a keyword to search"
	}
	m.page.Search.Click()
}

func (m *Model) navigate(direction string) {
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.state.Results))

	var sel, off int
	switch direction {
	case "up":
		sel, off = m.navigator.Move(-1)
	case "down":
		sel, off = m.navigator.Move(1)
	case "pageup":
		sel, off = m.navigator.Move(-m.navigator.PageSize())
	case "pagedown":
		sel, off = m.navigator.Move(m.navigator.PageSize())
	case "home":
		sel, off = m.navigator.SetSelectedIndex(0)
	case "end":
		sel, off = m.navigator.SetSelectedIndex(m.navigator.GetMaxIndex())
	default:
		return
	}
	m.state.SelectedIndex, m.state.ViewportOffset = sel, off
}

// updateViewportHeight recomputes how many result rows fit
func (m *Model) updateViewportHeight() {
	if m.height == 0 {
		return
	}
	m.state.ViewportHeight = views.ListHeight(m.height, len(m.state.Suggestions))
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.state.Results))
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// Render contract

// FillAutoSuggestions shows suggestions while the keyword is being edited
func (m *Model) FillAutoSuggestions(suggestions []domain.Suggestion) {
	if m.inputHandler.CurrentMode() != inputtypes.ModeKeyword {
		return
	}
	m.state.SetSuggestions(suggestions)
	m.updateViewportHeight()
}

func (m *Model) FillSearchResult(repos []domain.Repository) {
	m.state.SetResults(repos)
	m.state.TotalCount = m.coord.Results.Last().TotalCount
	m.updateViewportHeight()
}

func (m *Model) UpdateStarsSort(sort domain.SortSpec) {
	m.state.Sort = sort
}

func (m *Model) UpdateForksSort(sort domain.SortSpec) {
	m.state.Sort = sort
}

func (m *Model) UpdatePageNumber(page int) {
	m.state.Page = page
}

func (m *Model) Loading() {
	m.state.Loading = true
}

func (m *Model) Loaded() {
	m.state.Loading = false
}

func (m *Model) Alert(message string) {
	m.state.ShowAlert(message)
}
