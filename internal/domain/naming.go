package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// slugPattern matches runs of characters that are not lowercase
// alphanumerics after lowering.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s, replaces runs of non-alphanumeric characters with
// a single hyphen, and trims leading and trailing hyphens.
func Slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// ExpectedBranch returns the branch a story's work must happen on.
// Format: story/S<id>-<slug>, or intermittent/S<id>-<slug> for stories under
// the reserved "0." prefix.
func ExpectedBranch(storyID, title string) string {
	prefix := "story"
	if strings.HasPrefix(storyID, IntermittentFeatureID+".") {
		prefix = "intermittent"
	}
	return fmt.Sprintf("%s/S%s-%s", prefix, storyID, Slugify(title))
}

// StashMessage returns the message recorded when uncommitted work is
// stashed before switching to a story branch.
func StashMessage(branch string) string {
	return "storyflow: auto-stash before switching to " + branch
}

// FeatureDirName returns the directory name for a feature ("F1").
func FeatureDirName(featureID string) string {
	return "F" + featureID
}

// FeatureFileRelPath returns the feature file path relative to the tasks
// root ("F1/F1.json"). This is the value stored as the index path hint.
func FeatureFileRelPath(featureID string) string {
	return filepath.Join(FeatureDirName(featureID), "F"+featureID+".json")
}

// StoryDirName returns the directory name for a story ("S1.1-add-auth").
func StoryDirName(storyID, title string) string {
	return fmt.Sprintf("S%s-%s", storyID, Slugify(title))
}

// ProjectIndexPath returns the path to the project index file.
func ProjectIndexPath(root string) string {
	return filepath.Join(root, "project-index.json")
}

// FeatureFilePath returns the path to a feature file.
func FeatureFilePath(root, featureID string) string {
	return filepath.Join(root, FeatureFileRelPath(featureID))
}

// TaskFilePath returns the path to a task detail file.
func TaskFilePath(root, featureID, storyID, storyTitle, taskID string) string {
	return filepath.Join(root, FeatureDirName(featureID), StoryDirName(storyID, storyTitle), "T"+taskID+".json")
}

// LockFilePath returns the path to the advisory session lock file.
func LockFilePath(root string) string {
	return filepath.Join(root, ".storyflow.lock")
}

// LogFilePath returns the path to the global log file.
func LogFilePath(root string) string {
	return filepath.Join(root, "logs", "storyflow.log")
}
