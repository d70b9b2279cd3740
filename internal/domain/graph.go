package domain

// Graph is the in-memory model of a project's features, stories, and task
// refs. It is rebuilt from disk on every command invocation, so lookups are
// plain linear scans over backlog-sized data.
type Graph struct {
	Project  string
	Features []*Feature
}

// StoryLocation is a story together with its owning feature.
type StoryLocation struct {
	Feature *Feature
	Story   *Story
}

// TaskLocation is a task together with its owning story and feature.
type TaskLocation struct {
	Feature *Feature
	Story   *Story
	Task    *TaskRef
}

// FindFeature returns the feature with the given ID, or nil.
func (g *Graph) FindFeature(id string) *Feature {
	for _, f := range g.Features {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FindStory returns the story with the given ID and its feature, or nil.
func (g *Graph) FindStory(id string) *StoryLocation {
	for _, f := range g.Features {
		for _, s := range f.Stories {
			if s.ID == id {
				return &StoryLocation{Feature: f, Story: s}
			}
		}
	}
	return nil
}

// FindTask returns the task with the given ID and its story and feature,
// or nil.
func (g *Graph) FindTask(id string) *TaskLocation {
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				if t.ID == id {
					return &TaskLocation{Feature: f, Story: s, Task: t}
				}
			}
		}
	}
	return nil
}

// FindActiveTask returns the task currently in an active status, or nil.
// When both a main and an intermittent task are active, the main one is
// returned.
func (g *Graph) FindActiveTask() *TaskLocation {
	var intermittent *TaskLocation
	for _, f := range g.Features {
		for _, s := range f.Stories {
			for _, t := range s.Tasks {
				if !t.Status.IsActive() {
					continue
				}
				loc := &TaskLocation{Feature: f, Story: s, Task: t}
				if !t.Intermittent {
					return loc
				}
				if intermittent == nil {
					intermittent = loc
				}
			}
		}
	}
	return intermittent
}

// RecalculateRollups recomputes story and feature statuses bottom-up.
// A story is completed iff every owned task is completed, in-progress iff at
// least one task has moved past not-started, and not-started otherwise.
// Features roll up identically over their stories. An empty story or feature
// rolls up as not-started.
func (g *Graph) RecalculateRollups() {
	for _, f := range g.Features {
		for _, s := range f.Stories {
			s.Status = rollup(taskStatuses(s))
		}
		f.Status = rollup(storyStatuses(f))
	}
}

func taskStatuses(s *Story) []Status {
	out := make([]Status, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, t.Status)
	}
	return out
}

func storyStatuses(f *Feature) []Status {
	out := make([]Status, 0, len(f.Stories))
	for _, s := range f.Stories {
		out = append(out, s.Status)
	}
	return out
}

func rollup(statuses []Status) Status {
	if len(statuses) == 0 {
		return StatusNotStarted
	}
	allCompleted := true
	anyTouched := false
	for _, s := range statuses {
		if s != StatusCompleted {
			allCompleted = false
		}
		if s != StatusNotStarted {
			anyTouched = true
		}
	}
	switch {
	case allCompleted:
		return StatusCompleted
	case anyTouched:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// Index derives the lightweight project index from the graph.
func (g *Graph) Index() *ProjectIndex {
	idx := &ProjectIndex{Project: g.Project, Features: make([]FeatureRef, 0, len(g.Features))}
	for _, f := range g.Features {
		idx.Features = append(idx.Features, FeatureRef{
			ID:     f.ID,
			Title:  f.Title,
			Status: f.Status,
			Path:   f.Path,
		})
	}
	return idx
}

// EnsureIntermittentStory returns the reserved intermittent story,
// creating feature "0" and story "0.1" when they do not exist yet.
func (g *Graph) EnsureIntermittentStory() *StoryLocation {
	f := g.FindFeature(IntermittentFeatureID)
	if f == nil {
		f = &Feature{
			ID:     IntermittentFeatureID,
			Title:  "Intermittent Work",
			Status: StatusNotStarted,
			Path:   FeatureFileRelPath(IntermittentFeatureID),
		}
		// Reserved feature sorts first.
		g.Features = append([]*Feature{f}, g.Features...)
	}
	for _, s := range f.Stories {
		if s.ID == IntermittentStoryID {
			return &StoryLocation{Feature: f, Story: s}
		}
	}
	s := &Story{
		ID:     IntermittentStoryID,
		Title:  "Side Tasks",
		Status: StatusNotStarted,
	}
	f.Stories = append(f.Stories, s)
	return &StoryLocation{Feature: f, Story: s}
}
