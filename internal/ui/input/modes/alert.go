package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"reposcout/internal/ui/input/types"
)

// AlertMode swallows every key until the alert is acknowledged
type AlertMode struct{}

func NewAlertMode() *AlertMode {
	return &AlertMode{}
}

func (m *AlertMode) Name() string {
	return "alert"
}

func (m *AlertMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *AlertMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.DismissAlertAction{}}
}

func (m *AlertMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "enter", "esc", "q", " ":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}
	return nil, true
}
