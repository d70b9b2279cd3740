package domain

// Dependency resolution. A dependency is met iff the referenced task exists
// and is completed. A dependency ID that resolves to nothing is treated as
// permanently unmet rather than raised here: the persistence layer rejects
// dangling IDs at load time, and failing closed keeps malformed graphs
// assembled elsewhere (tests, migrations) from unblocking arbitrary tasks.

// DependenciesMet reports whether every dependency of the task is completed.
func (g *Graph) DependenciesMet(task *TaskRef) bool {
	return len(g.UnmetDependencies(task)) == 0
}

// UnmetDependencies returns the dependency IDs of the task that are not
// completed, in declaration order.
func (g *Graph) UnmetDependencies(task *TaskRef) []string {
	var unmet []string
	for _, dep := range task.Dependencies {
		loc := g.FindTask(dep)
		if loc == nil || loc.Task.Status != StatusCompleted {
			unmet = append(unmet, dep)
		}
	}
	return unmet
}

// FindNextAvailableTask returns the first not-started task whose
// dependencies are all met, scanning in declaration order (feature, then
// story, then task). Main tasks are preferred over intermittent ones: side
// work is only suggested when no planned feature work is available.
// excludeID, when non-empty, skips that task. Returns nil when no task is
// available.
func (g *Graph) FindNextAvailableTask(excludeID string) *TaskLocation {
	if loc := g.scanAvailable(excludeID, false); loc != nil {
		return loc
	}
	return g.scanAvailable(excludeID, true)
}

func (g *Graph) scanAvailable(excludeID string, intermittent bool) *TaskLocation {
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				if t.ID == excludeID || t.Intermittent != intermittent {
					continue
				}
				if t.Status != StatusNotStarted {
					continue
				}
				if !g.DependenciesMet(t) {
					continue
				}
				return &TaskLocation{Feature: f, Story: s, Task: t}
			}
		}
	}
	return nil
}
