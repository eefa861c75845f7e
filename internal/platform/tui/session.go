// Package tui hosts the interpreter behind a Bubble Tea terminal UI,
// both locally and over SSH via Wish.
package tui

import (
	"strings"

	"github.com/kirilian/tui-advent/internal/engine"
	"github.com/kirilian/tui-advent/internal/savegame"
)

// Session collects engine output for display and services in-game save
// requests. It is the Terminal the engine talks to.
type Session struct {
	eng      *engine.Engine
	savePath string
	lines    []string
	prompt   string
	commands []string
}

// NewSession creates a session that writes saves to savePath. An empty
// path disables the SAVE GAME verb.
func NewSession(savePath string) *Session {
	return &Session{savePath: savePath}
}

// Bind attaches the engine after construction. The engine needs a
// Terminal at creation time, so the two are wired in this order.
func (s *Session) Bind(e *engine.Engine) { s.eng = e }

// Display appends engine output to the transcript.
func (s *Session) Display(text string) {
	for _, line := range strings.Split(text, "\n") {
		s.lines = append(s.lines, line)
	}
}

// Prompt records the text shown next to the input field.
func (s *Session) Prompt(text string) { s.prompt = text }

// SaveRequested writes the current game state to the session's save
// path. Called by the engine when a SAVE GAME instruction fires.
func (s *Session) SaveRequested() {
	if s.eng == nil || s.savePath == "" {
		s.Display("Saving is not available here.")
		return
	}
	rec := savegame.Capture(s.eng, s.commands)
	if err := savegame.Save(s.savePath, rec); err != nil {
		s.Display("Save failed: " + err.Error())
		return
	}
	s.Display("Game saved.")
}

// RecordCommand echoes a player command into the transcript and keeps
// it for the save file's recent-command window.
func (s *Session) RecordCommand(cmd string) {
	s.lines = append(s.lines, "> "+cmd)
	s.commands = append(s.commands, cmd)
}

// SeedCommands preloads the command history, used when resuming from a
// save file.
func (s *Session) SeedCommands(cmds []string) {
	s.commands = append(s.commands, cmds...)
}

// Lines returns the full output transcript.
func (s *Session) Lines() []string { return s.lines }

// PromptText returns the most recent prompt set by the engine.
func (s *Session) PromptText() string { return s.prompt }
