package domain

import (
	"errors"
	"testing"
)

func sessionGraph(tasks ...*TaskRef) *Graph {
	return &Graph{Features: []*Feature{
		{ID: "1", Stories: []*Story{{ID: "1.1", Tasks: tasks}}},
	}}
}

func TestGraph_AssertCanStart(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []*TaskRef
		requested string
		wantErr   bool
		activeID  string
	}{
		{
			name: "idle graph allows start",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusNotStarted},
				{ID: "1.1.1", Status: StatusNotStarted},
			},
			requested: "1.1.1",
		},
		{
			name: "active main task blocks another main task",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusImplementing},
				{ID: "1.1.1", Status: StatusNotStarted},
			},
			requested: "1.1.1",
			wantErr:   true,
			activeID:  "1.1.0",
		},
		{
			name: "active main task does not block intermittent work",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusImplementing},
				{ID: "1.1.1", Status: StatusNotStarted, Intermittent: true},
			},
			requested: "1.1.1",
		},
		{
			name: "active intermittent task blocks another intermittent task",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusSetup, Intermittent: true},
				{ID: "1.1.1", Status: StatusNotStarted, Intermittent: true},
			},
			requested: "1.1.1",
			wantErr:   true,
			activeID:  "1.1.0",
		},
		{
			name: "active intermittent task does not block main work",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusSetup, Intermittent: true},
				{ID: "1.1.1", Status: StatusNotStarted},
			},
			requested: "1.1.1",
		},
		{
			name: "a task never conflicts with itself",
			tasks: []*TaskRef{
				{ID: "1.1.0", Status: StatusImplementing},
			},
			requested: "1.1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sessionGraph(tt.tasks...)
			err := g.AssertCanStart(g.FindTask(tt.requested).Task)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("AssertCanStart() error = %v", err)
				}
				return
			}
			var sessionErr *ActiveSessionExistsError
			if !errors.As(err, &sessionErr) {
				t.Fatalf("AssertCanStart() error = %v, want ActiveSessionExistsError", err)
			}
			if sessionErr.ActiveID != tt.activeID {
				t.Errorf("ActiveID = %s, want %s", sessionErr.ActiveID, tt.activeID)
			}
		})
	}
}
