// Package debugui draws a Dear ImGui overlay above the game. Panels are ECS
// entities whose render functions run once per frame inside the backend's
// frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bounce/ecs"
)

// Panel is a component holding a Dear ImGui render function.
type Panel struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates InputState and defers every panel's render function.
type ImguiSystem struct {
	Panels     ecs.Query[struct{ *Panel }]
	InputState ecs.Singleton[InputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for panel := range s.Panels.Values() {
		frame.Commands.Defer(panel.Render)
	}
}
