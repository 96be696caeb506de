package catalog

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

// MediaManager edits the media collection of one project edit buffer and
// keeps the buffer's ImageURL equal to the main image's URL.
// Unknown media ids are ignored.
type MediaManager struct {
	project *models.Project
	newID   func() string
}

// NewMediaManager wraps project, which is modified in place.
func NewMediaManager(project *models.Project) *MediaManager {
	return &MediaManager{project: project, newID: uuid.NewString}
}

// Items returns a copy of the current media collection.
func (m *MediaManager) Items() []models.MediaItem {
	return append([]models.MediaItem(nil), m.project.Media...)
}

// AttachImage appends an image by URL or data URI. It becomes the main image
// when the project has none yet.
func (m *MediaManager) AttachImage(imageURL string) models.MediaItem {
	item := models.MediaItem{ID: m.newID(), Type: models.MediaImage, URL: imageURL}
	items, mainURL := computeMainAfterAttach(m.project.Media, item)
	m.apply(items, mainURL)
	return items[len(items)-1]
}

// AttachImageBytes sniffs data, rejects anything that is not an image and
// attaches it as a data URI.
func (m *MediaManager) AttachImageBytes(data []byte) (models.MediaItem, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return models.MediaItem{}, errs.NewUnsupportedMediaTypeError(mime.String(), []string{"image/*"})
	}
	return m.AttachImage(DataURI(mime.String(), data)), nil
}

// AttachVideo appends a video. YouTube watch links are rewritten to their
// embeddable form. Videos never affect the main image.
func (m *MediaManager) AttachVideo(videoURL string) models.MediaItem {
	item := models.MediaItem{ID: m.newID(), Type: models.MediaVideo, URL: EmbedURL(videoURL)}
	items, mainURL := computeMainAfterAttach(m.project.Media, item)
	m.apply(items, mainURL)
	return items[len(items)-1]
}

// Remove drops the item with mediaID, promoting the first remaining image if
// the main image was removed. It reports whether anything was removed.
func (m *MediaManager) Remove(mediaID string) bool {
	items, mainURL, ok := computeMainAfterRemove(m.project.Media, mediaID)
	if !ok {
		return false
	}
	m.apply(items, mainURL)
	return true
}

// SetMain makes the image with mediaID the main image. Videos and unknown ids
// are ignored. It reports whether the main image was set.
func (m *MediaManager) SetMain(mediaID string) bool {
	items, mainURL, ok := computeMainAfterSetMain(m.project.Media, mediaID)
	if !ok {
		return false
	}
	m.apply(items, mainURL)
	return true
}

func (m *MediaManager) apply(items []models.MediaItem, mainURL string) {
	if len(items) == 0 {
		items = nil
	}
	m.project.Media = items
	m.project.ImageURL = mainURL
}

// computeMainAfterAttach returns items with item appended. A new image is
// main only if no image is main yet.
func computeMainAfterAttach(items []models.MediaItem, item models.MediaItem) ([]models.MediaItem, string) {
	out := make([]models.MediaItem, 0, len(items)+1)
	out = append(out, items...)

	item.IsMain = false
	if item.IsImage() && mainIndex(out) < 0 {
		item.IsMain = true
	}
	out = append(out, item)
	return out, mainURL(out)
}

// computeMainAfterRemove returns items without mediaID. If the removed item
// was main, the first remaining image takes over.
func computeMainAfterRemove(items []models.MediaItem, mediaID string) ([]models.MediaItem, string, bool) {
	removed := -1
	out := make([]models.MediaItem, 0, len(items))
	for i, item := range items {
		if item.ID == mediaID && removed < 0 {
			removed = i
			continue
		}
		out = append(out, item)
	}
	if removed < 0 {
		return items, mainURL(items), false
	}

	if items[removed].IsMain {
		for i := range out {
			if out[i].IsImage() {
				out[i].IsMain = true
				break
			}
		}
	}
	return out, mainURL(out), true
}

// computeMainAfterSetMain returns items with only mediaID flagged as main.
func computeMainAfterSetMain(items []models.MediaItem, mediaID string) ([]models.MediaItem, string, bool) {
	target := -1
	for i, item := range items {
		if item.ID == mediaID {
			target = i
			break
		}
	}
	if target < 0 || !items[target].IsImage() {
		return items, mainURL(items), false
	}

	out := make([]models.MediaItem, len(items))
	for i, item := range items {
		item.IsMain = i == target
		out[i] = item
	}
	return out, out[target].URL, true
}

// normalizeMedia repairs a draft coming from an editor so the main-image
// rules hold: ids are filled in, videos are never main, exactly one image is
// main when any image exists, and ImageURL follows it. Media ids are unique
// within the project; a repeated id is replaced with a fresh one. A bare
// ImageURL with no image media is attached as the main image.
func normalizeMedia(p *models.Project, newID func() string) {
	items := make([]models.MediaItem, 0, len(p.Media)+1)
	ids := make(map[string]bool, len(p.Media)+1)
	freshID := func() string {
		id := newID()
		for ids[id] {
			id = newID()
		}
		return id
	}
	seenMain := false
	for _, item := range p.Media {
		if item.ID == "" || ids[item.ID] {
			item.ID = freshID()
		}
		ids[item.ID] = true
		switch {
		case !item.IsImage():
			item.IsMain = false
			item.URL = EmbedURL(item.URL)
		case item.IsMain && seenMain:
			item.IsMain = false
		case item.IsMain:
			seenMain = true
		}
		items = append(items, item)
	}

	if !seenMain {
		for i := range items {
			if items[i].IsImage() {
				items[i].IsMain = true
				seenMain = true
				break
			}
		}
	}

	if !seenMain && strings.TrimSpace(p.ImageURL) != "" {
		items = append(items, models.MediaItem{
			ID:     freshID(),
			Type:   models.MediaImage,
			URL:    strings.TrimSpace(p.ImageURL),
			IsMain: true,
		})
	}

	if len(items) == 0 {
		items = nil
	}
	p.Media = items
	p.ImageURL = mainURL(items)
}

func mainIndex(items []models.MediaItem) int {
	for i, item := range items {
		if item.IsImage() && item.IsMain {
			return i
		}
	}
	return -1
}

func mainURL(items []models.MediaItem) string {
	if i := mainIndex(items); i >= 0 {
		return items[i].URL
	}
	return ""
}

// DataURI encodes data as a base64 data URI of the given MIME type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EmbedURL rewrites YouTube watch and short links to the embeddable form.
// Any other URL is returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var videoID string
	switch host {
	case "youtube.com":
		if u.Path == "/watch" {
			videoID = u.Query().Get("v")
		}
	case "youtu.be":
		videoID = strings.Trim(u.Path, "/")
	}
	if videoID == "" || strings.Contains(videoID, "/") {
		return raw
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(videoID)
}
