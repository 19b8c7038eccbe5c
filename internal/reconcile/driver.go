package reconcile

// State is the requested existence of a resource.
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// States lists the accepted state values, for validation rules.
func States() []any {
	return []any{StatePresent, StateAbsent}
}

// Action is the single mutation (at most one per Act step) a reconciliation
// decided on.
type Action string

const (
	ActionNone   Action = "none"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Decide computes the action needed to converge a resource onto the
// requested state. For present, a missing resource is created and an
// existing one is updated only when the desired attributes are not already
// a subset of the current ones; supplying fewer attributes than currently
// set is never a change. For absent, only an existing resource is deleted.
func Decide(state State, existingID string, desired, current map[string]any) Action {
	if state == StateAbsent {
		if existingID != "" {
			return ActionDelete
		}
		return ActionNone
	}
	if existingID == "" {
		return ActionCreate
	}
	if desired != nil && !IsSubset(desired, current) {
		return ActionUpdate
	}
	return ActionNone
}

// Step records the outcome of one Act step, so multi-step modules surface
// each step's status independently instead of letting one failure mask the
// others.
type Step struct {
	Name    string `json:"name" yaml:"name"`
	Changed bool   `json:"changed" yaml:"changed"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result is the normalized per-invocation output: the changed flag, echoed
// input parameters, per-step statuses for multi-step modules and the API
// payload of the last call. A Result is built up during the invocation and
// handed to the caller complete; it is never mutated afterwards.
type Result struct {
	Changed bool
	Params  map[string]any
	Steps   []Step
	Output  any
}

// NewResult seeds a result with the echoed input parameters.
func NewResult(params map[string]any) *Result {
	if params == nil {
		params = map[string]any{}
	}
	return &Result{Params: params}
}

// MarkChanged flags the invocation as having mutated remote state.
func (r *Result) MarkChanged() { r.Changed = true }

// AddStep records a step outcome and folds its changed flag into the
// overall result.
func (r *Result) AddStep(name string, changed bool, err error) {
	step := Step{Name: name, Changed: changed}
	if err != nil {
		step.Error = err.Error()
	}
	r.Steps = append(r.Steps, step)
	if changed {
		r.Changed = true
	}
}

// Render flattens the result into the map shape emitted to the user:
// echoed params, the changed flag, step statuses when present, and the
// last API payload under "json".
func (r *Result) Render() map[string]any {
	out := make(map[string]any, len(r.Params)+3)
	for k, v := range r.Params {
		out[k] = v
	}
	out["changed"] = r.Changed
	if len(r.Steps) > 0 {
		out["steps"] = r.Steps
	}
	if r.Output != nil {
		out["json"] = r.Output
	} else {
		out["json"] = map[string]any{}
	}
	return out
}
