// Package taskstore provides the JSON file-based implementation of
// domain.GraphRepository: a project index, one file per feature, and one
// detail file per task.
package taskstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hmendes/storyflow/internal/domain"
)

// Store implements domain.GraphRepository on a tasks directory.
type Store struct {
	root string
}

// New creates a Store rooted at the given tasks directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the tasks directory the store operates on.
func (s *Store) Root() string {
	return s.root
}

// IsInitialized checks whether the project index exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(domain.ProjectIndexPath(s.root))
	return err == nil
}

// Initialize scaffolds the tasks directory with an empty project index.
// It is a no-op when the index already exists.
func (s *Store) Initialize(project string) error {
	if err := os.MkdirAll(s.root, 0o750); err != nil {
		return fmt.Errorf("create tasks directory: %w", err)
	}
	path := domain.ProjectIndexPath(s.root)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	idx := &domain.ProjectIndex{Project: project, Features: []domain.FeatureRef{}}
	return s.writeJSON(path, idx)
}

// LoadGraph reconstructs the full graph by reading the project index and
// then each feature file. Schema validation happens here, once, at the
// boundary; every other component trusts the in-memory types.
func (s *Store) LoadGraph() (*domain.Graph, error) {
	idxPath := domain.ProjectIndexPath(s.root)
	var idx domain.ProjectIndex
	if err := s.readJSON(idxPath, &idx); err != nil {
		var notFound *domain.FileNotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.ErrNotInitialized
		}
		return nil, err
	}
	if err := validateIndex(idxPath, &idx); err != nil {
		return nil, err
	}

	g := &domain.Graph{Project: idx.Project}
	for _, ref := range idx.Features {
		relPath := ref.Path
		if relPath == "" {
			relPath = domain.FeatureFileRelPath(ref.ID)
		}
		path := filepath.Join(s.root, relPath)
		var f domain.Feature
		if err := s.readJSON(path, &f); err != nil {
			return nil, err
		}
		if err := validateFeature(path, &f); err != nil {
			return nil, err
		}
		if f.ID != ref.ID {
			return nil, &domain.InvalidFileFormatError{
				Path:   path,
				Detail: fmt.Sprintf("feature ID %q does not match index entry %q", f.ID, ref.ID),
			}
		}
		if f.Path == "" {
			f.Path = relPath
		}
		g.Features = append(g.Features, &f)
	}

	if err := validateDependencies(idxPath, g); err != nil {
		return nil, err
	}
	return g, nil
}

// SaveFeature writes a single feature file.
func (s *Store) SaveFeature(f *domain.Feature) error {
	return s.writeJSON(domain.FeatureFilePath(s.root, f.ID), f)
}

// SaveProjectIndex writes the index derived from the graph.
func (s *Store) SaveProjectIndex(g *domain.Graph) error {
	return s.writeJSON(domain.ProjectIndexPath(s.root), g.Index())
}

// SaveGraph writes every feature file and then the project index.
func (s *Store) SaveGraph(g *domain.Graph) error {
	for _, f := range g.Features {
		if err := s.SaveFeature(f); err != nil {
			return err
		}
	}
	return s.SaveProjectIndex(g)
}

// LoadTaskFile reads the detail file for the task at loc.
func (s *Store) LoadTaskFile(loc *domain.TaskLocation) (*domain.TaskFile, error) {
	path := s.taskFilePath(loc)
	var file domain.TaskFile
	if err := s.readJSON(path, &file); err != nil {
		return nil, err
	}
	if err := validateTaskFile(path, &file); err != nil {
		return nil, err
	}
	if file.ID != loc.Task.ID {
		return nil, &domain.InvalidFileFormatError{
			Path:   path,
			Detail: fmt.Sprintf("task ID %q does not match ref %q", file.ID, loc.Task.ID),
		}
	}
	return &file, nil
}

// SaveTaskFile writes the detail file for the task at loc.
func (s *Store) SaveTaskFile(loc *domain.TaskLocation, file *domain.TaskFile) error {
	return s.writeJSON(s.taskFilePath(loc), file)
}

func (s *Store) taskFilePath(loc *domain.TaskLocation) string {
	return domain.TaskFilePath(s.root, loc.Feature.ID, loc.Story.ID, loc.Story.Title, loc.Task.ID)
}

func (s *Store) readJSON(path string, v any) error {
	content, err := os.ReadFile(path) //nolint:gosec // paths are derived from the tasks root
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.FileNotFoundError{Path: path}
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return &domain.InvalidFileFormatError{Path: path, Detail: err.Error()}
	}
	return nil
}

// writeJSON writes v as indented JSON with a trailing newline, using a
// temp file + rename so a crash cannot leave a half-written file.
func (s *Store) writeJSON(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	content = append(content, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements GraphRepository.
var _ domain.GraphRepository = (*Store)(nil)
