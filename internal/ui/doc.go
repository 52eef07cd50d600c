// Package ui contains the Bubble Tea program that drives the glyph picker.
// Model handles message orchestration and hands every decision about the
// menu tree to a menu.Engine.
//
// Message flow:
//   - Bubble Tea invokes Model.Update, which routes each tea.Msg through a
//     typed handler registry (key presses, window resizes).
//   - Filter editing keys are consumed first by the input helpers
//     (internal/ui/input.go). The remaining keys become engine events: enter
//     is Ok, esc is Cancel, tab is Complete.
//   - After the engine reacts, reload brings the level stack back in line
//     with the engine's active list: a new list pushes a level, the parent
//     list pops one and restores its cursor, the same list only picks up
//     input changes.
//
// State ownership:
//   - The engine owns which list is active and performs the clipboard copy.
//   - internal/ui/state.Level owns per-list view state: filter text, cursor,
//     and viewport offset.
package ui
