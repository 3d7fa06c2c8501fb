package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reposcout/internal/ui/input/types"
)

// KeywordMode edits the search keyword. The text is kept when the mode is
// left so the keyword line keeps showing it.
type KeywordMode struct {
	textInput *textinput.Model
}

func NewKeywordMode(ti *textinput.Model) *KeywordMode {
	return &KeywordMode{textInput: ti}
}

func (m *KeywordMode) Name() string {
	return "keyword"
}

func (m *KeywordMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.SetValue(ctx.Keyword())
		m.textInput.CursorEnd()
		m.textInput.Focus()
		m.textInput.Prompt = "" // Prompt is handled in the UI layer
	}
	return nil
}

func (m *KeywordMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *KeywordMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		text := ""
		if m.textInput != nil {
			text = m.textInput.Value()
		}
		return []types.Action{
			types.SubmitTextAction{Text: text},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "tab":
		if ctx.HasSuggestions() {
			return []types.Action{types.AcceptSuggestionAction{}}, true
		}
		return nil, true
	case "up", "ctrl+p":
		return []types.Action{types.SuggestionNavigateAction{Delta: -1}}, true
	case "down", "ctrl+n":
		return []types.Action{types.SuggestionNavigateAction{Delta: 1}}, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
