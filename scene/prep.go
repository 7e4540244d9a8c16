package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PrepKind is the type of a keyboard preparation step the game runs before
// the map starts.
type PrepKind int

const (
	PrepLog PrepKind = iota
	PrepKeyDown
	PrepKeyUp
	PrepWait
	PrepKeyUpAll
)

// PrepKinds lists the kinds in the order the editor offers them.
var PrepKinds = [...]PrepKind{PrepLog, PrepKeyDown, PrepKeyUp, PrepWait, PrepKeyUpAll}

func (k PrepKind) String() string {
	switch k {
	case PrepLog:
		return "Log"
	case PrepKeyDown:
		return "KeyDown"
	case PrepKeyUp:
		return "KeyUp"
	case PrepWait:
		return "Wait"
	case PrepKeyUpAll:
		return "KeyUpAll"
	default:
		return "Unknown"
	}
}

// PrepAction is one step. Msg is used by Log, Key by KeyDown and KeyUp, Ms by
// Wait.
type PrepAction struct {
	Kind PrepKind
	Msg  string
	Key  string
	Ms   int
}

// NewPrepAction returns the step the editor appends for kind.
func NewPrepAction(kind PrepKind) PrepAction {
	a := PrepAction{Kind: kind}
	if kind == PrepWait {
		a.Ms = 100
	}
	return a
}

func (a PrepAction) String() string {
	switch a.Kind {
	case PrepLog:
		return fmt.Sprintf("Log %q", a.Msg)
	case PrepKeyDown, PrepKeyUp:
		return fmt.Sprintf("%s %s", a.Kind, a.Key)
	case PrepWait:
		return fmt.Sprintf("Wait %dms", a.Ms)
	default:
		return a.Kind.String()
	}
}

type logBody struct {
	Msg string `json:"msg"`
}

type keyBody struct {
	Key string `json:"key"`
}

type waitBody struct {
	Ms int `json:"ms"`
}

// MarshalJSON writes the externally tagged form: {"Log":{"msg":"..."}},
// {"Wait":{"ms":100}} or the bare string "KeyUpAll".
func (a PrepAction) MarshalJSON() ([]byte, error) {
	var body any
	switch a.Kind {
	case PrepLog:
		body = logBody{Msg: a.Msg}
	case PrepKeyDown, PrepKeyUp:
		body = keyBody{Key: a.Key}
	case PrepWait:
		body = waitBody{Ms: a.Ms}
	case PrepKeyUpAll:
		return json.Marshal(a.Kind.String())
	default:
		return nil, fmt.Errorf("scene: cannot marshal prep action kind %d", int(a.Kind))
	}
	return json.Marshal(map[string]any{a.Kind.String(): body})
}

func (a *PrepAction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return fmt.Errorf("scene: prep action: %w", err)
		}
		if tag != PrepKeyUpAll.String() {
			return fmt.Errorf("scene: prep action %q needs a body", tag)
		}
		*a = PrepAction{Kind: PrepKeyUpAll}
		return nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("scene: prep action: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("scene: prep action must have exactly one tag, got %d", len(tagged))
	}
	for tag, raw := range tagged {
		kind, err := parsePrepKind(tag)
		if err != nil {
			return err
		}
		out := PrepAction{Kind: kind}
		switch kind {
		case PrepLog:
			var b logBody
			err = json.Unmarshal(raw, &b)
			out.Msg = b.Msg
		case PrepKeyDown, PrepKeyUp:
			var b keyBody
			err = json.Unmarshal(raw, &b)
			out.Key = b.Key
		case PrepWait:
			var b waitBody
			err = json.Unmarshal(raw, &b)
			out.Ms = b.Ms
		}
		if err != nil {
			return fmt.Errorf("scene: prep action %s: %w", tag, err)
		}
		*a = out
	}
	return nil
}

func parsePrepKind(tag string) (PrepKind, error) {
	for _, k := range PrepKinds {
		if k.String() == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("scene: unknown prep action %q", tag)
}

// PrepActions is the ordered list of steps.
type PrepActions []PrepAction

func (p *PrepActions) Add(a PrepAction) {
	*p = append(*p, a)
}

func (p *PrepActions) Remove(i int) bool {
	if i < 0 || i >= len(*p) {
		return false
	}
	*p = append((*p)[:i], (*p)[i+1:]...)
	return true
}

// MoveUp swaps step i with the one before it.
func (p PrepActions) MoveUp(i int) bool {
	if i <= 0 || i >= len(p) {
		return false
	}
	p[i-1], p[i] = p[i], p[i-1]
	return true
}

// MoveDown swaps step i with the one after it.
func (p PrepActions) MoveDown(i int) bool {
	if i < 0 || i >= len(p)-1 {
		return false
	}
	p[i], p[i+1] = p[i+1], p[i]
	return true
}
