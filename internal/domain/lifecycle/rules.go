package lifecycle

// CanTransition reports whether a manual status change from one status to
// another is allowed. Manual changes are deliberately permissive: operators
// may skip stages or move backward. The only hard rules are that cancelled
// is absorbing and both endpoints must be known statuses.
func CanTransition(from, to Status) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	return true
}

// NextOnFirstTask returns the status an event should advance to when its
// first task is created, and whether an advance should happen at all.
// Advancement is forward-only and never fires from cancelled.
func NextOnFirstTask(current Status, taskCount int) (Status, bool) {
	if taskCount <= 0 {
		return current, false
	}
	if current.Before(StatusTaskCreation) {
		return StatusTaskCreation, true
	}
	return current, false
}

// NextOnFirstBudgetItem is the budget counterpart of NextOnFirstTask,
// advancing toward budget_generation.
func NextOnFirstBudgetItem(current Status, itemCount int) (Status, bool) {
	if itemCount <= 0 {
		return current, false
	}
	if current.Before(StatusBudgetGeneration) {
		return StatusBudgetGeneration, true
	}
	return current, false
}
