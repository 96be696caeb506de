package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// projectRecord is the persisted shape of a project. Tools are stored as a
// comma-joined string and older records may carry "image" instead of
// "imageUrl".
type projectRecord struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	FullDescription string             `json:"fullDescription,omitempty"`
	Category        []string           `json:"category"`
	Tools           recordTools        `json:"tools"`
	ImageURL        string             `json:"imageUrl"`
	Image           string             `json:"image,omitempty"`
	Media           []models.MediaItem `json:"media,omitempty"`
	DemoLink        string             `json:"demoLink,omitempty"`
	DocsLink        string             `json:"docsLink,omitempty"`
	Link            string             `json:"link,omitempty"`
}

type recordTools models.Tools

func (t recordTools) MarshalJSON() ([]byte, error) {
	return json.Marshal(models.Tools(t).String())
}

func (t *recordTools) UnmarshalJSON(data []byte) error {
	var tools models.Tools
	if err := tools.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = recordTools(tools)
	return nil
}

func toRecord(p models.Project) projectRecord {
	return projectRecord{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		FullDescription: p.FullDescription,
		Category:        p.Category,
		Tools:           recordTools(p.Tools),
		ImageURL:        p.ImageURL,
		Media:           p.Media,
		DemoLink:        p.DemoLink,
		DocsLink:        p.DocsLink,
		Link:            p.Link,
	}
}

func (r projectRecord) toModel() models.Project {
	imageURL := r.ImageURL
	if imageURL == "" {
		imageURL = r.Image
	}
	tools := models.Tools(r.Tools)
	if tools == nil {
		tools = models.Tools{}
	}
	category := r.Category
	if category == nil {
		category = []string{models.CategoryAll}
	}
	var media []models.MediaItem
	if len(r.Media) > 0 {
		media = r.Media
	}
	return models.Project{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		FullDescription: r.FullDescription,
		Category:        category,
		Tools:           tools,
		ImageURL:        imageURL,
		Media:           media,
		DemoLink:        r.DemoLink,
		DocsLink:        r.DocsLink,
		Link:            r.Link,
	}
}

type ProjectRepo struct {
	store KVStore
	key   string
}

func NewProjectRepo(store KVStore, key string) *ProjectRepo {
	return &ProjectRepo{store: store, key: key}
}

// Key returns the slot the catalog is stored under
func (r *ProjectRepo) Key() string {
	return r.key
}

// FindAll returns the stored catalog in its stored order. An empty or
// missing slot yields an empty catalog.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.Project{}, nil
	}
	if err != nil {
		return nil, errs.NewPersistenceError("read", "projects", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.Project{}, nil
	}

	var records []projectRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errs.NewCorruptRecordError(r.key, err)
	}

	projects := make([]models.Project, 0, len(records))
	for _, record := range records {
		projects = append(projects, record.toModel())
	}
	return projects, nil
}

// ReplaceAll overwrites the stored catalog with projects
func (r *ProjectRepo) ReplaceAll(ctx context.Context, projects []models.Project) error {
	records := make([]projectRecord, 0, len(projects))
	for _, p := range projects {
		records = append(records, toRecord(p))
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return errs.NewPersistenceError("encode", "projects", err)
	}

	if err := r.store.Put(ctx, r.key, raw); err != nil {
		return errs.NewPersistenceError("write", "projects", err)
	}
	return nil
}
