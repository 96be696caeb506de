package models

// CategoryAll is the sentinel tag carried by every project so that an
// unfiltered listing returns it.
const CategoryAll = "all"

// Project represents a single portfolio entry
type Project struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	FullDescription string      `json:"fullDescription,omitempty"`
	Category        []string    `json:"category"`
	Tools           Tools       `json:"tools"`
	ImageURL        string      `json:"imageUrl"`
	Media           []MediaItem `json:"media,omitempty"`
	DemoLink        string      `json:"demoLink,omitempty"`
	DocsLink        string      `json:"docsLink,omitempty"`
	Link            string      `json:"link,omitempty"`
}

// Clone returns a deep copy so callers can edit a project without touching
// the catalog's copy.
func (p Project) Clone() Project {
	c := p
	if p.Category != nil {
		c.Category = append([]string(nil), p.Category...)
	}
	if p.Tools != nil {
		c.Tools = append(Tools(nil), p.Tools...)
	}
	if p.Media != nil {
		c.Media = append([]MediaItem(nil), p.Media...)
	}
	return c
}

// HasCategory reports whether the project is tagged with tag.
func (p Project) HasCategory(tag string) bool {
	for _, c := range p.Category {
		if c == tag {
			return true
		}
	}
	return false
}

// DomainCategory returns the project's non-sentinel tag, or CategoryAll if
// it has none.
func (p Project) DomainCategory() string {
	for i := len(p.Category) - 1; i >= 0; i-- {
		if p.Category[i] != CategoryAll && p.Category[i] != "" {
			return p.Category[i]
		}
	}
	return CategoryAll
}

// WithCategory replaces the project's domain tag. Selecting CategoryAll
// clears it. The sentinel is never removed.
func (p *Project) WithCategory(tag string) {
	categories := []string{CategoryAll}
	if tag != "" && tag != CategoryAll {
		categories = append(categories, tag)
	}
	p.Category = categories
}

// NormalizeCategory enforces the category shape: the sentinel first, then at
// most one domain tag (the last one supplied).
func NormalizeCategory(categories []string) []string {
	p := Project{Category: categories}
	p.WithCategory(p.DomainCategory())
	return p.Category
}

// MediaType is the kind of asset attached to a project
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether t is a known media type.
func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// MediaItem is one image or video attached to a project.
// IsMain only carries meaning for images.
type MediaItem struct {
	ID     string    `json:"id"`
	Type   MediaType `json:"type"`
	URL    string    `json:"url"`
	IsMain bool      `json:"isMain,omitempty"`
}

// IsImage reports whether the item is an image.
func (m MediaItem) IsImage() bool {
	return m.Type == MediaImage
}
