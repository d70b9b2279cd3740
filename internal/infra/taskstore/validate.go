package taskstore

import (
	"fmt"

	"github.com/hmendes/storyflow/internal/domain"
)

// Schema validation for persisted files. Every violation is reported as an
// InvalidFileFormatError carrying the offending path and detail.

func invalid(path, format string, args ...any) error {
	return &domain.InvalidFileFormatError{Path: path, Detail: fmt.Sprintf(format, args...)}
}

func validateIndex(path string, idx *domain.ProjectIndex) error {
	if idx.Project == "" {
		return invalid(path, "missing required field %q", "project")
	}
	seen := make(map[string]bool, len(idx.Features))
	for _, ref := range idx.Features {
		if !domain.ValidFeatureID(ref.ID) {
			return invalid(path, "malformed feature ID %q", ref.ID)
		}
		if seen[ref.ID] {
			return invalid(path, "duplicate feature ID %q", ref.ID)
		}
		seen[ref.ID] = true
		if ref.Title == "" {
			return invalid(path, "feature %s: missing required field %q", ref.ID, "title")
		}
	}
	return nil
}

func validateFeature(path string, f *domain.Feature) error {
	if !domain.ValidFeatureID(f.ID) {
		return invalid(path, "malformed feature ID %q", f.ID)
	}
	if f.Title == "" {
		return invalid(path, "feature %s: missing required field %q", f.ID, "title")
	}
	if f.Status != "" && !f.Status.IsValidRollup() {
		return invalid(path, "feature %s: invalid rollup status %q", f.ID, f.Status)
	}
	storySeen := make(map[string]bool, len(f.Stories))
	for _, st := range f.Stories {
		if err := validateStory(path, f, st, storySeen); err != nil {
			return err
		}
	}
	return nil
}

func validateStory(path string, f *domain.Feature, st *domain.Story, seen map[string]bool) error {
	if !domain.ValidStoryID(st.ID) {
		return invalid(path, "malformed story ID %q", st.ID)
	}
	if domain.FeatureIDOf(st.ID) != f.ID {
		return invalid(path, "story %s does not belong to feature %s", st.ID, f.ID)
	}
	if seen[st.ID] {
		return invalid(path, "duplicate story ID %q", st.ID)
	}
	seen[st.ID] = true
	if st.Title == "" {
		return invalid(path, "story %s: missing required field %q", st.ID, "title")
	}
	if st.Status != "" && !st.Status.IsValidRollup() {
		return invalid(path, "story %s: invalid rollup status %q", st.ID, st.Status)
	}
	taskSeen := make(map[string]bool, len(st.Tasks))
	for _, t := range st.Tasks {
		if err := validateTaskRef(path, st, t, taskSeen); err != nil {
			return err
		}
	}
	return nil
}

func validateTaskRef(path string, st *domain.Story, t *domain.TaskRef, seen map[string]bool) error {
	if !domain.ValidTaskID(t.ID) {
		return invalid(path, "malformed task ID %q", t.ID)
	}
	if domain.StoryIDOf(t.ID) != st.ID {
		return invalid(path, "task %s does not belong to story %s", t.ID, st.ID)
	}
	if seen[t.ID] {
		return invalid(path, "duplicate task ID %q", t.ID)
	}
	seen[t.ID] = true
	if t.Title == "" {
		return invalid(path, "task %s: missing required field %q", t.ID, "title")
	}
	if !t.Status.IsValid() {
		return invalid(path, "task %s: invalid status %q", t.ID, t.Status)
	}
	for _, dep := range t.Dependencies {
		if !domain.ValidTaskID(dep) {
			return invalid(path, "task %s: malformed dependency ID %q", t.ID, dep)
		}
	}
	return nil
}

// validateDependencies checks referential integrity of dependency IDs across
// the whole graph. Dangling references are rejected at load rather than
// silently treated as forever-unmet.
func validateDependencies(path string, g *domain.Graph) error {
	for _, f := range g.Features {
		for _, st := range f.Stories {
			for _, t := range st.Tasks {
				for _, dep := range t.Dependencies {
					if g.FindTask(dep) == nil {
						return invalid(path, "task %s depends on unknown task %q", t.ID, dep)
					}
				}
			}
		}
	}
	return nil
}

func validateTaskFile(path string, file *domain.TaskFile) error {
	if !domain.ValidTaskID(file.ID) {
		return invalid(path, "malformed task ID %q", file.ID)
	}
	if file.Title == "" {
		return invalid(path, "missing required field %q", "title")
	}
	if !file.Status.IsValid() {
		return invalid(path, "invalid status %q", file.Status)
	}
	blocked := file.Status == domain.StatusBlocked
	if blocked && (file.BlockedReason == "" || file.PreviousStatus == "") {
		return invalid(path, "blocked task must carry blockedReason and previousStatus")
	}
	if !blocked && (file.BlockedReason != "" || file.PreviousStatus != "") {
		return invalid(path, "blockedReason and previousStatus are only valid while status is blocked")
	}
	if blocked && !file.PreviousStatus.IsActive() {
		return invalid(path, "previousStatus %q is not an active status", file.PreviousStatus)
	}
	return nil
}
