package component

// Trigger runs Action on every tick its predicate holds. A nil When never
// fires, so a zone without a condition stays inert.
type Trigger struct {
	When   Predicate
	Action func()
	// Once disarms the trigger after the first firing.
	Once bool

	fired int
}

// Check evaluates the trigger and runs the action if it holds. It reports
// whether the action ran.
func (t *Trigger) Check() bool {
	if t == nil || t.When == nil || t.Action == nil {
		return false
	}
	if t.Once && t.fired > 0 {
		return false
	}
	if !t.When() {
		return false
	}
	t.fired++
	t.Action()
	return true
}

// Fired counts how many times the action ran.
func (t *Trigger) Fired() int { return t.fired }

// Rearm clears the fire count so a Once trigger can fire again.
func (t *Trigger) Rearm() { t.fired = 0 }
