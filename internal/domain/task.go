// Package domain contains core business entities and interfaces.
package domain

import (
	"regexp"
	"strings"
	"time"
)

// Reserved IDs for intermittent (side) work. The feature and story are
// auto-created the first time an intermittent task is added.
const (
	IntermittentFeatureID = "0"
	IntermittentStoryID   = "0.1"
)

// ID patterns. IDs encode the hierarchy positionally: a task's first two
// dot-separated components equal its owning story's ID, and a story's first
// component equals its owning feature's ID.
var (
	featureIDPattern = regexp.MustCompile(`^\d+$`)
	storyIDPattern   = regexp.MustCompile(`^\d+\.\d+$`)
	taskIDPattern    = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// ValidFeatureID reports whether id is a well-formed feature ID.
func ValidFeatureID(id string) bool { return featureIDPattern.MatchString(id) }

// ValidStoryID reports whether id is a well-formed story ID.
func ValidStoryID(id string) bool { return storyIDPattern.MatchString(id) }

// ValidTaskID reports whether id is a well-formed task ID.
func ValidTaskID(id string) bool { return taskIDPattern.MatchString(id) }

// StoryIDOf returns the story component of a task ID ("1.2.3" -> "1.2").
func StoryIDOf(taskID string) string {
	if i := strings.LastIndex(taskID, "."); i > 0 {
		return taskID[:i]
	}
	return ""
}

// FeatureIDOf returns the feature component of a story or task ID.
func FeatureIDOf(id string) string {
	if i := strings.Index(id, "."); i > 0 {
		return id[:i]
	}
	return id
}

// TaskRef is the lightweight task handle stored inside a story. The full
// detail lives in the separately persisted TaskFile.
type TaskRef struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Status       Status   `json:"status"`
	Dependencies []string `json:"dependencies,omitempty"`
	Intermittent bool     `json:"isIntermittent,omitempty"`
}

// Story is a user-facing scenario within a feature, bound to one branch.
// Its status is derived from its tasks and never authored directly.
type Story struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status Status     `json:"status"`
	Tasks  []*TaskRef `json:"tasks"`
}

// Feature is a top-level functional area containing stories.
type Feature struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Status  Status   `json:"status"`
	Path    string   `json:"path,omitempty"`
	Stories []*Story `json:"stories"`
}

// FeatureRef is the lightweight feature entry stored in the project index.
type FeatureRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	Path   string `json:"path"`
}

// ProjectIndex is the top-level directory of features. It is a listing,
// not the full graph.
type ProjectIndex struct {
	Project  string       `json:"project"`
	Features []FeatureRef `json:"features"`
}

// Subtask is an ordered checklist entry inside a task file.
type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskFile is the full per-task detail, persisted one file per task.
// BlockedReason and PreviousStatus are set iff Status is blocked.
type TaskFile struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Skill          string     `json:"skill,omitempty"`
	Subtasks       []Subtask  `json:"subtasks,omitempty"`
	Context        []string   `json:"context,omitempty"`
	BlockedReason  string     `json:"blockedReason,omitempty"`
	PreviousStatus Status     `json:"previousStatus,omitempty"`
	Notes          []string   `json:"notes,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
