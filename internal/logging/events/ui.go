package events

import "github.com/atomicstack/ohsdash/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) MenuEnter(levelID, itemID, label, filter string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) ScreenPush(screenID, path string, depth int) {
	logging.Trace("screen.push", map[string]interface{}{"screen": screenID, "path": path, "depth": depth})
}

func (UITracer) Key(screenID, key string) {
	logging.Trace("ui.key", map[string]interface{}{"screen": screenID, "key": key})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

// prompt traces an edit of a text prompt. scope is the menu level id or
// the record screen id that owns the prompt.
func prompt(event, scope string, extra map[string]interface{}) {
	payload := map[string]interface{}{"scope": scope}
	for k, v := range extra {
		payload[k] = v
	}
	logging.Trace("prompt."+event, payload)
}

func (FilterTracer) Cleared(scope string) {
	prompt("clear", scope, nil)
}

func (FilterTracer) WordBackspace(scope, value string) {
	prompt("delete-word", scope, map[string]interface{}{"value": value})
}

func (FilterTracer) Cursor(scope string, pos int) {
	prompt("cursor", scope, map[string]interface{}{"cursor": pos})
}

func (FilterTracer) CursorWord(scope string, pos int) {
	prompt("cursor", scope, map[string]interface{}{"cursor": pos, "word": true})
}

func (FilterTracer) Append(scope, value string) {
	prompt("insert", scope, map[string]interface{}{"value": value})
}

func (FilterTracer) Backspace(scope, value string) {
	prompt("backspace", scope, map[string]interface{}{"value": value})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
