package domain

import "testing"

// backlog builds a small two-feature graph used across the graph tests.
func backlog() *Graph {
	return &Graph{
		Project: "demo",
		Features: []*Feature{
			{
				ID: "1", Title: "Auth", Status: StatusNotStarted,
				Stories: []*Story{
					{
						ID: "1.1", Title: "Login", Status: StatusNotStarted,
						Tasks: []*TaskRef{
							{ID: "1.1.0", Title: "Schema", Status: StatusNotStarted},
							{ID: "1.1.1", Title: "Endpoint", Status: StatusNotStarted, Dependencies: []string{"1.1.0"}},
						},
					},
				},
			},
			{
				ID: "2", Title: "Billing", Status: StatusNotStarted,
				Stories: []*Story{
					{
						ID: "2.1", Title: "Invoices", Status: StatusNotStarted,
						Tasks: []*TaskRef{
							{ID: "2.1.0", Title: "Model", Status: StatusNotStarted},
						},
					},
				},
			},
		},
	}
}

func TestGraph_Find(t *testing.T) {
	g := backlog()

	if f := g.FindFeature("2"); f == nil || f.Title != "Billing" {
		t.Errorf("FindFeature(2) = %v", f)
	}
	if f := g.FindFeature("9"); f != nil {
		t.Errorf("FindFeature(9) = %v, want nil", f)
	}

	if s := g.FindStory("1.1"); s == nil || s.Feature.ID != "1" {
		t.Errorf("FindStory(1.1) = %v", s)
	}
	if s := g.FindStory("1.9"); s != nil {
		t.Errorf("FindStory(1.9) = %v, want nil", s)
	}

	loc := g.FindTask("1.1.1")
	if loc == nil || loc.Feature.ID != "1" || loc.Story.ID != "1.1" {
		t.Fatalf("FindTask(1.1.1) = %v", loc)
	}
	if loc := g.FindTask("9.9.9"); loc != nil {
		t.Errorf("FindTask(9.9.9) = %v, want nil", loc)
	}
}

func TestGraph_FindActiveTask(t *testing.T) {
	g := backlog()
	if loc := g.FindActiveTask(); loc != nil {
		t.Fatalf("FindActiveTask() on idle graph = %v", loc)
	}

	g.FindTask("2.1.0").Task.Status = StatusImplementing
	loc := g.FindActiveTask()
	if loc == nil || loc.Task.ID != "2.1.0" {
		t.Fatalf("FindActiveTask() = %v, want 2.1.0", loc)
	}
}

func TestGraph_FindActiveTask_PrefersMain(t *testing.T) {
	g := backlog()
	side := g.EnsureIntermittentStory()
	side.Story.Tasks = append(side.Story.Tasks, &TaskRef{
		ID: "0.1.0", Title: "Side", Status: StatusSetup, Intermittent: true,
	})
	g.FindTask("1.1.0").Task.Status = StatusPlanning

	loc := g.FindActiveTask()
	if loc == nil || loc.Task.ID != "1.1.0" {
		t.Fatalf("FindActiveTask() = %v, want the main task", loc)
	}

	// With only side work active, the intermittent task is returned.
	g.FindTask("1.1.0").Task.Status = StatusNotStarted
	loc = g.FindActiveTask()
	if loc == nil || loc.Task.ID != "0.1.0" {
		t.Fatalf("FindActiveTask() = %v, want the intermittent task", loc)
	}
}

func TestGraph_RecalculateRollups(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all not-started", []Status{StatusNotStarted, StatusNotStarted}, StatusNotStarted},
		{"one touched", []Status{StatusSetup, StatusNotStarted}, StatusInProgress},
		{"one completed", []Status{StatusCompleted, StatusNotStarted}, StatusInProgress},
		{"blocked counts as touched", []Status{StatusBlocked, StatusNotStarted}, StatusInProgress},
		{"on-hold counts as touched", []Status{StatusOnHold, StatusNotStarted}, StatusInProgress},
		{"all completed", []Status{StatusCompleted, StatusCompleted}, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := backlog()
			s := g.FindStory("1.1").Story
			for i, st := range tt.statuses {
				s.Tasks[i].Status = st
			}
			g.RecalculateRollups()
			if s.Status != tt.want {
				t.Errorf("story rollup = %s, want %s", s.Status, tt.want)
			}
		})
	}
}

func TestGraph_RecalculateRollups_FeatureOverStories(t *testing.T) {
	g := backlog()
	// Feature 1 has one story; completing all its tasks completes the feature.
	for _, task := range g.FindStory("1.1").Story.Tasks {
		task.Status = StatusCompleted
	}
	g.RecalculateRollups()

	if got := g.FindFeature("1").Status; got != StatusCompleted {
		t.Errorf("feature 1 rollup = %s, want completed", got)
	}
	if got := g.FindFeature("2").Status; got != StatusNotStarted {
		t.Errorf("feature 2 rollup = %s, want not-started", got)
	}
}

func TestGraph_RecalculateRollups_EmptyStory(t *testing.T) {
	g := &Graph{Features: []*Feature{
		{ID: "1", Stories: []*Story{{ID: "1.1", Status: StatusInProgress}}},
	}}
	g.RecalculateRollups()
	if got := g.Features[0].Stories[0].Status; got != StatusNotStarted {
		t.Errorf("empty story rollup = %s, want not-started", got)
	}
	if got := g.Features[0].Status; got != StatusNotStarted {
		t.Errorf("feature over empty story = %s, want not-started", got)
	}
}

func TestGraph_Index(t *testing.T) {
	g := backlog()
	g.Features[0].Path = "F1/F1.json"
	idx := g.Index()

	if idx.Project != "demo" || len(idx.Features) != 2 {
		t.Fatalf("Index() = %+v", idx)
	}
	if idx.Features[0].ID != "1" || idx.Features[0].Path != "F1/F1.json" {
		t.Errorf("Index() entry = %+v", idx.Features[0])
	}
}

func TestGraph_EnsureIntermittentStory(t *testing.T) {
	g := backlog()
	loc := g.EnsureIntermittentStory()
	if loc.Feature.ID != IntermittentFeatureID || loc.Story.ID != IntermittentStoryID {
		t.Fatalf("EnsureIntermittentStory() = F%s/S%s", loc.Feature.ID, loc.Story.ID)
	}
	if g.Features[0].ID != IntermittentFeatureID {
		t.Errorf("reserved feature should sort first, got %s", g.Features[0].ID)
	}

	// Idempotent: a second call returns the same story.
	again := g.EnsureIntermittentStory()
	if again.Story != loc.Story {
		t.Error("EnsureIntermittentStory() created a duplicate story")
	}
	if n := len(g.Features); n != 3 {
		t.Errorf("feature count = %d, want 3", n)
	}
}
