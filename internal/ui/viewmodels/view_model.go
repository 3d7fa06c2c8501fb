package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"reposcout/internal/ui/state"
	"reposcout/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	width     int
	height    int
	textInput textinput.Model
	editing   bool
	perPage   string
	spinner   string
	helpView  string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState) *ViewModel {
	return &ViewModel{state: appState}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// UpdateTextInput updates the keyword input and whether it is being edited
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model, editing bool) {
	vm.textInput = textInput
	vm.editing = editing
}

// SetPerPage sets the page size as shown by the selector
func (vm *ViewModel) SetPerPage(perPage string) {
	vm.perPage = perPage
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetHelpView sets the rendered key hints
func (vm *ViewModel) SetHelpView(help string) {
	vm.helpView = help
}

// keywordInput renders the live input while editing and the plain keyword
// otherwise
func (vm *ViewModel) keywordInput() string {
	if vm.editing {
		return vm.textInput.View()
	}
	if vm.state.Keyword == "" {
		return vm.textInput.Placeholder
	}
	return vm.state.Keyword
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	return views.ViewState{
		Width:           vm.width,
		Height:          vm.height,
		KeywordInput:    vm.keywordInput(),
		Editing:         vm.editing,
		Suggestions:     vm.state.Suggestions,
		SuggestionIndex: vm.state.SuggestionIndex,
		Results:         vm.state.Results,
		TotalCount:      vm.state.TotalCount,
		HasSearched:     vm.state.HasSearched,
		SelectedIndex:   vm.state.SelectedIndex,
		ViewportOffset:  vm.state.ViewportOffset,
		ViewportHeight:  vm.state.ViewportHeight,
		Sort:            vm.state.Sort,
		Page:            vm.state.Page,
		PerPage:         vm.perPage,
		Loading:         vm.state.Loading,
		Spinner:         vm.spinner,
		Alert:           vm.state.Alert,
		StatusMessage:   vm.state.StatusMessage,
		HelpView:        vm.helpView,
	}
}
