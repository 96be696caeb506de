package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// Repository persists the whole catalog as one unit
type Repository interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	ReplaceAll(ctx context.Context, projects []models.Project) error
}

// Catalog owns the ordered list of projects. Reads are served from memory;
// every mutation rewrites the whole list through the repository and only
// takes effect once that write succeeds.
type Catalog struct {
	mutex    sync.RWMutex
	repo     Repository
	projects []models.Project
	newID    func() string
	logger   zerolog.Logger
	metrics  *Metrics
}

type Option func(*Catalog)

// WithIDGenerator replaces uuid.NewString for project and media ids
func WithIDGenerator(newID func() string) Option {
	return func(c *Catalog) {
		c.newID = newID
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Catalog) {
		c.metrics = metrics
	}
}

// New loads the catalog from repo
func New(ctx context.Context, repo Repository, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		repo:   repo,
		newID:  uuid.NewString,
		logger: log.With().Str("component", "catalog").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory catalog with what is currently stored.
// Stored records go through the same media repair as edited drafts, so a
// record carrying only an imageUrl gets that image as its main media item.
func (c *Catalog) Reload(ctx context.Context) error {
	projects, err := c.repo.FindAll(ctx)
	c.metrics.observe("reload", err)
	if err != nil {
		return err
	}
	for i := range projects {
		c.normalize(&projects[i])
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.projects = projects
	c.metrics.setProjects(len(projects))
	c.logger.Info().Int("projects", len(projects)).Msg("Catalog loaded")
	return nil
}

// List returns every project in catalog order
func (c *Catalog) List() []models.Project {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return lo.Map(c.projects, func(p models.Project, _ int) models.Project {
		return p.Clone()
	})
}

// FindByID returns the project with id, or a not-found error
func (c *Catalog) FindByID(id string) (models.Project, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p, ok := lo.Find(c.projects, func(p models.Project) bool {
		return p.ID == id
	})
	if !ok {
		return models.Project{}, errs.NewNotFound("project")
	}
	return p.Clone(), nil
}

// FilterByCategory returns the projects tagged with tag, in catalog order.
// The sentinel "all" (or an empty tag) returns the full list.
func (c *Catalog) FilterByCategory(tag string) []models.Project {
	if tag == "" || tag == models.CategoryAll {
		return c.List()
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return lo.FilterMap(c.projects, func(p models.Project, _ int) (models.Project, bool) {
		return p.Clone(), p.HasCategory(tag)
	})
}

// Create validates draft, gives it a fresh id, appends it and persists the
// catalog. Any id on the draft is ignored.
func (c *Catalog) Create(ctx context.Context, draft models.Project) (models.Project, error) {
	project := draft.Clone()
	if err := validateProject(project); err != nil {
		c.metrics.observe("create", err)
		return models.Project{}, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	project.ID = c.newID()
	for c.indexOf(project.ID) >= 0 {
		project.ID = c.newID()
	}
	c.normalize(&project)

	next := make([]models.Project, 0, len(c.projects)+1)
	next = append(next, c.projects...)
	next = append(next, project)

	if err := c.commit(ctx, next); err != nil {
		c.metrics.observe("create", err)
		return models.Project{}, err
	}

	c.metrics.observe("create", nil)
	c.logger.Info().Str("projectID", project.ID).Str("title", project.Title).Msg("Project created")
	return project.Clone(), nil
}

// Update replaces the stored project with the same id, keeping its position
func (c *Catalog) Update(ctx context.Context, project models.Project) (models.Project, error) {
	project = project.Clone()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	index := c.indexOf(project.ID)
	if index < 0 || project.ID == "" {
		err := errs.NewNotFound("project")
		c.metrics.observe("update", err)
		return models.Project{}, err
	}

	if err := validateProject(project); err != nil {
		c.metrics.observe("update", err)
		return models.Project{}, err
	}
	c.normalize(&project)

	next := append([]models.Project(nil), c.projects...)
	next[index] = project

	if err := c.commit(ctx, next); err != nil {
		c.metrics.observe("update", err)
		return models.Project{}, err
	}

	c.metrics.observe("update", nil)
	c.logger.Info().Str("projectID", project.ID).Msg("Project updated")
	return project.Clone(), nil
}

// Delete removes the project with id and persists the catalog. Callers
// confirm with the user before calling it. Deleting an id that is not in the
// catalog succeeds without writing anything.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.indexOf(id) < 0 {
		c.metrics.observeNoop("delete")
		c.logger.Debug().Str("projectID", id).Msg("Delete of unknown project ignored")
		return nil
	}

	next := lo.Reject(c.projects, func(p models.Project, _ int) bool {
		return p.ID == id
	})

	if err := c.commit(ctx, next); err != nil {
		c.metrics.observe("delete", err)
		return err
	}

	c.metrics.observe("delete", nil)
	c.logger.Info().Str("projectID", id).Msg("Project deleted")
	return nil
}

// MediaManager returns a media manager over an edit buffer that mints ids
// the same way the catalog does.
func (c *Catalog) MediaManager(project *models.Project) *MediaManager {
	return &MediaManager{project: project, newID: c.newID}
}

// indexOf must be called with the lock held
func (c *Catalog) indexOf(id string) int {
	_, index, _ := lo.FindIndexOf(c.projects, func(p models.Project) bool {
		return p.ID == id
	})
	return index
}

// commit must be called with the write lock held
func (c *Catalog) commit(ctx context.Context, next []models.Project) error {
	if err := c.repo.ReplaceAll(ctx, next); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist catalog")
		return err
	}
	c.projects = next
	c.metrics.setProjects(len(next))
	return nil
}

func (c *Catalog) normalize(p *models.Project) {
	p.Category = models.NormalizeCategory(p.Category)
	p.Tools = p.Tools.Normalize()
	normalizeMedia(p, c.newID)
}
