package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reposcout/internal/domain"
	"reposcout/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.PageAction{Step: -1}}, true

	case tea.KeyRight:
		return []types.Action{types.PageAction{Step: 1}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		return []types.Action{types.SearchAction{}}, true

	case tea.KeyTab:
		if ctx.HasSuggestions() {
			return []types.Action{types.AcceptSuggestionAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "[", "h":
		return []types.Action{types.PageAction{Step: -1}}, true

	case "]", "l":
		return []types.Action{types.PageAction{Step: 1}}, true

	case "/", "i":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeKeyword}}, true

	case "s":
		return []types.Action{types.SortAction{Field: domain.SortStars}}, true

	case "f":
		return []types.Action{types.SortAction{Field: domain.SortForks}}, true

	case "p":
		return []types.Action{types.CyclePerPageAction{}}, true

	case "o":
		if ctx.TotalResults() > 0 {
			return []types.Action{types.ShowDetailsAction{}}, true
		}
		return nil, true

	case "y":
		if ctx.TotalResults() > 0 {
			return []types.Action{types.YankURLAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
