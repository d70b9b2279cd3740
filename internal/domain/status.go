package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusNotStarted   Status = "not-started"  // Created, no work begun
	StatusSetup        Status = "setup"        // Preparing branch and context
	StatusPlanning     Status = "planning"     // Deciding the approach
	StatusImplementing Status = "implementing" // Writing the change
	StatusVerifying    Status = "verifying"    // Self-checking the change
	StatusValidating   Status = "validating"   // Validating against acceptance criteria
	StatusCommitting   Status = "committing"   // Preparing the commit
	StatusCompleted    Status = "completed"    // Terminal
	StatusBlocked      Status = "blocked"      // Parked mid-flight, remembers where it was
	StatusOnHold       Status = "on-hold"      // Deliberately shelved before starting

	// StatusInProgress is a derived value used only for story and feature
	// rollups; tasks themselves carry the fine-grained active statuses.
	StatusInProgress Status = "in-progress"
)

// workflowChain is the main forward path. advance moves exactly one step
// to the right; blocked and on-hold branch off to the side.
var workflowChain = []Status{
	StatusNotStarted,
	StatusSetup,
	StatusPlanning,
	StatusImplementing,
	StatusVerifying,
	StatusValidating,
	StatusCommitting,
	StatusCompleted,
}

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusNotStarted,
		StatusSetup,
		StatusPlanning,
		StatusImplementing,
		StatusVerifying,
		StatusValidating,
		StatusCommitting,
		StatusCompleted,
		StatusBlocked,
		StatusOnHold,
	}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	for _, v := range AllStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// IsValidRollup returns true if the status is a legal story or feature
// rollup value.
func (s Status) IsValidRollup() bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// IsActive returns true if the status is one of the in-progress workflow
// states. A task in an active status occupies the developer session.
func (s Status) IsActive() bool {
	switch s {
	case StatusSetup, StatusPlanning, StatusImplementing, StatusVerifying, StatusValidating, StatusCommitting:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Next returns the status one step forward along the main chain.
// The second return value is false when s is not on the chain or is
// already at the end of it.
func (s Status) Next() (Status, bool) {
	for i, v := range workflowChain {
		if s == v {
			if i+1 < len(workflowChain) {
				return workflowChain[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusSetup:
		return "Setup"
	case StatusPlanning:
		return "Planning"
	case StatusImplementing:
		return "Implementing"
	case StatusVerifying:
		return "Verifying"
	case StatusValidating:
		return "Validating"
	case StatusCommitting:
		return "Committing"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	case StatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}
