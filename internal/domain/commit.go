package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CommitType is the conventional-commit type used in commit headers.
type CommitType string

const (
	CommitFeat     CommitType = "feat"
	CommitFix      CommitType = "fix"
	CommitDocs     CommitType = "docs"
	CommitStyle    CommitType = "style"
	CommitRefactor CommitType = "refactor"
	CommitTest     CommitType = "test"
	CommitChore    CommitType = "chore"
)

// IsValid returns true if the commit type is a known value.
func (c CommitType) IsValid() bool {
	switch c {
	case CommitFeat, CommitFix, CommitDocs, CommitStyle, CommitRefactor, CommitTest, CommitChore:
		return true
	default:
		return false
	}
}

// CommitMessage is the structured form of a storyflow commit message:
//
//	{type}(F{featureId}): T{taskId} - {title}
//
//	{body}
//
//	Story: S{storyId}
type CommitMessage struct {
	Type      CommitType
	FeatureID string
	TaskID    string
	StoryID   string
	Title     string
	Body      string
}

// headerPattern matches the commit header grammar exactly.
var headerPattern = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore)\(F(\d+)\): T(\d+\.\d+\.\d+) - (.+)$`)

// storyTrailerPattern matches the story trailer line.
var storyTrailerPattern = regexp.MustCompile(`^Story: S(\d+\.\d+)$`)

// Format renders the commit message in the canonical layout.
func (m *CommitMessage) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(F%s): T%s - %s\n\n", m.Type, m.FeatureID, m.TaskID, m.Title)
	if m.Body != "" {
		b.WriteString(m.Body)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Story: S%s", m.StoryID)
	return b.String()
}

// ParseCommitMessage parses a commit message produced by Format. Headers not
// matching the grammar are rejected.
func ParseCommitMessage(message string) (*CommitMessage, error) {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty commit message")
	}

	header := headerPattern.FindStringSubmatch(lines[0])
	if header == nil {
		return nil, fmt.Errorf("commit header %q does not match {type}(F{featureId}): T{taskId} - {title}", lines[0])
	}

	trailer := storyTrailerPattern.FindStringSubmatch(lines[len(lines)-1])
	if trailer == nil {
		return nil, fmt.Errorf("commit message is missing the Story: S{storyId} trailer")
	}

	m := &CommitMessage{
		Type:      CommitType(header[1]),
		FeatureID: header[2],
		TaskID:    header[3],
		Title:     header[4],
		StoryID:   trailer[1],
	}

	if StoryIDOf(m.TaskID) != m.StoryID {
		return nil, fmt.Errorf("task %s does not belong to story %s", m.TaskID, m.StoryID)
	}
	if FeatureIDOf(m.StoryID) != m.FeatureID {
		return nil, fmt.Errorf("story %s does not belong to feature %s", m.StoryID, m.FeatureID)
	}

	// Body is everything between the header and the trailer, minus the
	// blank separator lines.
	if len(lines) > 2 {
		body := strings.Join(lines[1:len(lines)-1], "\n")
		m.Body = strings.Trim(body, "\n")
	}
	return m, nil
}
