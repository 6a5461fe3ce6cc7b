package event

import "fmt"

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionStart
	ActionTick
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionSoftDrop
	ActionHardDrop
)

var actionNames = map[GameAction]string{
	ActionUnknown:   "unknown",
	ActionStart:     "start",
	ActionTick:      "tick",
	ActionMoveLeft:  "move_left",
	ActionMoveRight: "move_right",
	ActionRotate:    "rotate",
	ActionSoftDrop:  "soft_drop",
	ActionHardDrop:  "hard_drop",
}

func (a GameAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps a name such as "move_left" to its action.
func ParseAction(s string) (GameAction, error) {
	for a, name := range actionNames {
		if name == s && a != ActionUnknown {
			return a, nil
		}
	}
	return ActionUnknown, fmt.Errorf("unknown action %q", s)
}
