package cards

// transition is one declared move in the card state machine.
type transition struct {
	From Status
	To   Status
}

// actionLabels names actions for the UI. Every declared action id has one.
var actionLabels = map[string]string{
	"execute": "Do it",
	"save":    "Save for later",
	"enrich":  "Enrich",
	"review":  "Mark reviewed",
	"dismiss": "Dismiss",
}

// actionOrder fixes the presentation order of visible actions.
var actionOrder = []string{"execute", "save", "enrich", "review", "dismiss"}

// dismissAll lets a card be dismissed from any live status.
var dismissAll = []transition{
	{From: StatusActive, To: StatusDismissed},
	{From: StatusSaved, To: StatusDismissed},
	{From: StatusEvaluating, To: StatusDismissed},
}

// declaredTransitions maps card type -> action id -> allowed transitions.
// The mapping is declared per type, not shared: "enrich" only moves signal
// cards from saved into evaluating, for example. The overall machine is
// active -> {saved, dismissed}, saved -> {evaluating, dismissed},
// evaluating -> {dismissed}; dismissed is terminal.
var declaredTransitions = map[Type]map[string][]transition{
	TypeNextBestAction: {
		"execute": {{From: StatusActive, To: StatusDismissed}},
		"save":    {{From: StatusActive, To: StatusSaved}},
		"dismiss": dismissAll,
	},
	TypeDecision: {
		"save":    {{From: StatusActive, To: StatusSaved}},
		"review":  {{From: StatusSaved, To: StatusEvaluating}},
		"dismiss": dismissAll,
	},
	TypeSignal: {
		"save":    {{From: StatusActive, To: StatusSaved}},
		"enrich":  {{From: StatusSaved, To: StatusEvaluating}},
		"dismiss": dismissAll,
	},
	TypeReport: {
		"save":    {{From: StatusActive, To: StatusSaved}},
		"dismiss": dismissAll,
	},
	TypeRecall: {
		"dismiss": dismissAll,
	},
	TypeSystem: {
		"dismiss": dismissAll,
	},
	TypeContext: {
		"save":    {{From: StatusActive, To: StatusSaved}},
		"dismiss": dismissAll,
	},
}

// targetStatus resolves the action against the card type and current status.
// The second return is false when the action is not declared for that
// status: the caller must treat it as a failed no-op, never a silent change.
func targetStatus(t Type, current Status, actionID string) (Status, bool) {
	actions, ok := declaredTransitions[t]
	if !ok {
		return current, false
	}
	for _, tr := range actions[actionID] {
		if tr.From == current {
			return tr.To, true
		}
	}
	return current, false
}

// VisibleActions lists the actions declared for the type and status, in
// fixed presentation order. Undeclared actions are filtered from the UI but
// still validated on apply.
func VisibleActions(t Type, status Status) []Action {
	actions, ok := declaredTransitions[t]
	if !ok {
		return nil
	}
	visible := make([]Action, 0, len(actionOrder))
	for _, id := range actionOrder {
		for _, tr := range actions[id] {
			if tr.From == status {
				visible = append(visible, Action{ID: id, Label: actionLabels[id]})
				break
			}
		}
	}
	return visible
}
