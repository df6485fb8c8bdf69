// Package ui contains the Bubble Tea program behind the occupational health
// console. Model owns a stack of screens: fuzzy-filtered menus (the section
// menu, record kind lists and value pickers) and generic master-detail record
// screens, one per record kind.
//
// Message flow:
//   - Bubble Tea invokes Model.Update, which routes each tea.Msg through a
//     typed handler registry so every message lands in a focused function.
//   - Key and mouse input goes to the screen on top of the stack. Menus are
//     handled in navigation.go and input.go; record screens own their keys in
//     record_keys.go.
//   - Backend calls run through the command bus as tea.Cmd values. Results
//     come back wrapped in screenMsg and are handed to the screen that asked,
//     so a screen closed in the meantime never sees a late response.
//
// State ownership:
//   - Record collections, filtering, pagination, selection restore, the split
//     layout and form buffers live in internal/ui/state and are generic over
//     the record type.
//   - Reference lists used to resolve names are kept in internal/state and
//     refreshed by the dispatcher as the backend watcher reports changes.
//   - Pane widths and selections persist per screen path in RouteState.
package ui
