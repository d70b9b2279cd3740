package domain

// Workflow transitions. Every transition mutates both the TaskRef held in
// the graph and the TaskFile detail so the two stay in sync; callers are
// responsible for recalculating rollups and saving afterwards.

// StartTask moves a task from not-started (or on-hold) into setup.
func StartTask(ref *TaskRef, file *TaskFile) error {
	switch ref.Status {
	case StatusCompleted:
		return &TaskAlreadyCompletedError{ID: ref.ID}
	case StatusBlocked:
		return &TaskBlockedError{ID: ref.ID, Reason: file.BlockedReason}
	case StatusNotStarted, StatusOnHold:
		setStatus(ref, file, StatusSetup)
		return nil
	default:
		return &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "not-started or on-hold",
			Action:   "start",
		}
	}
}

// AdvanceTask moves a task strictly one step forward along the main chain.
// Only tasks in an active status can advance.
func AdvanceTask(ref *TaskRef, file *TaskFile) (Status, error) {
	if ref.Status == StatusCompleted {
		return "", &TaskAlreadyCompletedError{ID: ref.ID}
	}
	if ref.Status == StatusBlocked {
		return "", &TaskBlockedError{ID: ref.ID, Reason: file.BlockedReason}
	}
	if !ref.Status.IsActive() {
		return "", &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "an active workflow status",
			Action:   "advance",
		}
	}
	next, ok := ref.Status.Next()
	if !ok {
		return "", &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "a status with a forward step",
			Action:   "advance",
		}
	}
	setStatus(ref, file, next)
	return next, nil
}

// BlockTask parks an active task, remembering the status it was blocked from
// so that resume is lossless.
func BlockTask(ref *TaskRef, file *TaskFile, reason string) error {
	if reason == "" {
		return ErrEmptyReason
	}
	if ref.Status == StatusCompleted {
		return &TaskAlreadyCompletedError{ID: ref.ID}
	}
	if ref.Status == StatusBlocked {
		return &TaskBlockedError{ID: ref.ID, Reason: file.BlockedReason}
	}
	if !ref.Status.IsActive() {
		return &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "an active workflow status",
			Action:   "block",
		}
	}
	file.PreviousStatus = ref.Status
	file.BlockedReason = reason
	ref.Status = StatusBlocked
	file.Status = StatusBlocked
	return nil
}

// ResumeTask restores a blocked task to the status it was blocked from, or
// to an explicit override status when one is supplied. It also takes
// on-hold tasks back to not-started.
func ResumeTask(ref *TaskRef, file *TaskFile, target Status) error {
	if ref.Status == StatusOnHold {
		setStatus(ref, file, StatusNotStarted)
		return nil
	}
	if ref.Status != StatusBlocked {
		return &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "blocked or on-hold",
			Action:   "resume",
		}
	}
	restored := file.PreviousStatus
	if target != "" {
		if !target.IsActive() {
			return &InvalidWorkflowStateError{
				ID:       ref.ID,
				Current:  ref.Status,
				Required: "an active workflow status as the resume target",
				Action:   "resume",
			}
		}
		restored = target
	}
	file.BlockedReason = ""
	file.PreviousStatus = ""
	setStatus(ref, file, restored)
	return nil
}

// HoldTask shelves a task that has not been started yet.
func HoldTask(ref *TaskRef, file *TaskFile) error {
	if ref.Status != StatusNotStarted {
		return &InvalidWorkflowStateError{
			ID:       ref.ID,
			Current:  ref.Status,
			Required: "not-started",
			Action:   "hold",
		}
	}
	setStatus(ref, file, StatusOnHold)
	return nil
}

func setStatus(ref *TaskRef, file *TaskFile, s Status) {
	ref.Status = s
	file.Status = s
}
