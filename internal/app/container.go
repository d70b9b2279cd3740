// Package app provides the dependency injection container for the
// application.
package app

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hmendes/storyflow/internal/domain"
	"github.com/hmendes/storyflow/internal/infra/config"
	"github.com/hmendes/storyflow/internal/infra/git"
	"github.com/hmendes/storyflow/internal/infra/lockfile"
	"github.com/hmendes/storyflow/internal/infra/logging"
	"github.com/hmendes/storyflow/internal/infra/taskstore"
	"github.com/hmendes/storyflow/internal/usecase"
)

// Container provides dependency injection for the application. It holds all
// port implementations and provides factory methods for use cases.
type Container struct {
	Graphs domain.GraphRepository
	Lock   domain.SessionLock
	Clock  domain.Clock
	Logger *slog.Logger
	Config *domain.Config

	// ProjectRoot is the directory the tasks dir and config live under.
	ProjectRoot string
	// TasksRoot is the tasks directory itself.
	TasksRoot string

	closeLog func() error
	gitC     domain.Git
}

// New creates a Container rooted at the project containing dir. The project
// root is the nearest ancestor carrying a storyflow.toml or a tasks
// directory; when none exists, dir itself (so `init` can scaffold it).
func New(dir string) (*Container, error) {
	projectRoot := findProjectRoot(dir)

	cfg, err := config.NewLoader(projectRoot).Load()
	if err != nil {
		return nil, err
	}

	tasksRoot := filepath.Join(projectRoot, cfg.Project.TasksDir)

	logger, closeLog, err := logging.New(domain.LogFilePath(tasksRoot), logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		return nil, err
	}

	return &Container{
		Graphs:      taskstore.New(tasksRoot),
		Lock:        lockfile.New(domain.LockFilePath(tasksRoot)),
		Clock:       domain.RealClock{},
		Logger:      logger,
		Config:      cfg,
		ProjectRoot: projectRoot,
		TasksRoot:   tasksRoot,
		closeLog:    closeLog,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(graphs domain.GraphRepository, gitC domain.Git, lock domain.SessionLock, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Graphs: graphs,
		Lock:   lock,
		Clock:  clock,
		Logger: logger,
		Config: domain.NewDefaultConfig(),
		gitC:   gitC,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.closeLog != nil {
		return c.closeLog()
	}
	return nil
}

// Git returns the version-control client, opening the repository lazily so
// commands that never touch git work outside one.
func (c *Container) Git() (domain.Git, error) {
	if c.gitC != nil {
		return c.gitC, nil
	}
	client, err := git.NewClient(c.ProjectRoot, c.Config.GitTimeout())
	if err != nil {
		return nil, err
	}
	c.gitC = client
	return client, nil
}

// findProjectRoot walks up from dir looking for a storyflow.toml or a tasks
// directory holding a project index.
func findProjectRoot(dir string) string {
	for d := dir; ; {
		if _, err := os.Stat(filepath.Join(d, domain.ConfigFileName)); err == nil {
			return d
		}
		if _, err := os.Stat(filepath.Join(d, "tasks", "project-index.json")); err == nil {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}

// UseCase factory methods

// NextTaskUseCase returns a new NextTask use case.
func (c *Container) NextTaskUseCase() *usecase.NextTask {
	return usecase.NewNextTask(c.Graphs)
}

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() (*usecase.StartTask, error) {
	g, err := c.Git()
	if err != nil {
		return nil, err
	}
	return usecase.NewStartTask(c.Graphs, g, c.Lock, c.Clock, c.Logger, c.Config.Git.BaseBranch), nil
}

// AdvanceTaskUseCase returns a new AdvanceTask use case.
func (c *Container) AdvanceTaskUseCase() (*usecase.AdvanceTask, error) {
	g, err := c.Git()
	if err != nil {
		return nil, err
	}
	return usecase.NewAdvanceTask(c.Graphs, g, c.Lock, c.Clock, c.Logger), nil
}

// BlockTaskUseCase returns a new BlockTask use case.
func (c *Container) BlockTaskUseCase() *usecase.BlockTask {
	return usecase.NewBlockTask(c.Graphs, c.Lock, c.Logger)
}

// ResumeTaskUseCase returns a new ResumeTask use case.
func (c *Container) ResumeTaskUseCase() *usecase.ResumeTask {
	return usecase.NewResumeTask(c.Graphs, c.Lock, c.Logger)
}

// HoldTaskUseCase returns a new HoldTask use case.
func (c *Container) HoldTaskUseCase() *usecase.HoldTask {
	return usecase.NewHoldTask(c.Graphs, c.Lock, c.Logger)
}

// ShowStatusUseCase returns a new ShowStatus use case.
func (c *Container) ShowStatusUseCase() *usecase.ShowStatus {
	return usecase.NewShowStatus(c.Graphs)
}

// InitProjectUseCase returns a new InitProject use case.
func (c *Container) InitProjectUseCase() *usecase.InitProject {
	return usecase.NewInitProject(c.Graphs)
}

// NewFeatureUseCase returns a new NewFeature use case.
func (c *Container) NewFeatureUseCase() *usecase.NewFeature {
	return usecase.NewNewFeature(c.Graphs, c.Lock, c.Logger)
}

// NewStoryUseCase returns a new NewStory use case.
func (c *Container) NewStoryUseCase() *usecase.NewStory {
	return usecase.NewNewStory(c.Graphs, c.Lock, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Graphs, c.Lock, c.Logger)
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.Graphs, c.Lock, c.Logger)
}
