package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var clipboardWrite = clipboard.WriteAll

// CopyIDAction copies the record id carried by item to the system clipboard.
func CopyIDAction(_ Context, item Item) tea.Cmd {
	return func() tea.Msg {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return ActionResult{Err: errors.New("nothing selected to copy")}
		}
		if err := clipboardWrite(id); err != nil {
			return ActionResult{Err: fmt.Errorf("copy %s: %w", item.Label, err)}
		}
		label := item.Label
		if label == "" {
			label = id
		}
		return ActionResult{Info: fmt.Sprintf("Copied id of %s", label)}
	}
}
