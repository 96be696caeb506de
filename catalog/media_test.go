package catalog

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

func newTestMediaManager(p *models.Project) *MediaManager {
	return &MediaManager{project: p, newID: sequentialIDs()}
}

// assertMainImageRules checks that exactly one image is main when any image
// exists, that no video is main, and that ImageURL follows the main image.
func assertMainImageRules(t *testing.T, p models.Project) {
	t.Helper()

	images, mains := 0, 0
	for _, item := range p.Media {
		if item.IsImage() {
			images++
			if item.IsMain {
				mains++
				assert.Equal(t, item.URL, p.ImageURL)
			}
		} else {
			assert.False(t, item.IsMain, "video %s flagged main", item.ID)
		}
	}

	if images == 0 {
		assert.Zero(t, mains)
		assert.Empty(t, p.ImageURL)
		return
	}
	assert.Equal(t, 1, mains)
}

func TestAttachSetMainRemove(t *testing.T) {
	p := models.Project{Title: "t", Description: "d"}
	m := newTestMediaManager(&p)

	a := m.AttachImage("A")
	assert.True(t, a.IsMain)
	assert.Equal(t, "A", p.ImageURL)

	b := m.AttachImage("B")
	assert.False(t, b.IsMain)
	assert.Equal(t, "A", p.ImageURL)
	assertMainImageRules(t, p)

	require.True(t, m.SetMain(b.ID))
	assert.Equal(t, "B", p.ImageURL)
	assert.False(t, p.Media[0].IsMain)
	assert.True(t, p.Media[1].IsMain)

	require.True(t, m.Remove(b.ID))
	require.Len(t, p.Media, 1)
	assert.Equal(t, a.ID, p.Media[0].ID)
	assert.True(t, p.Media[0].IsMain)
	assert.Equal(t, "A", p.ImageURL)

	require.True(t, m.Remove(a.ID))
	assert.Nil(t, p.Media)
	assert.Empty(t, p.ImageURL)
}

func TestRemovingNonMainKeepsMain(t *testing.T) {
	p := models.Project{}
	m := newTestMediaManager(&p)

	m.AttachImage("A")
	b := m.AttachImage("B")
	m.AttachImage("C")

	require.True(t, m.Remove(b.ID))
	assert.Equal(t, "A", p.ImageURL)
	assert.Equal(t, []string{"A", "C"}, []string{p.Media[0].URL, p.Media[1].URL})
}

func TestVideoNeverBecomesMain(t *testing.T) {
	p := models.Project{}
	m := newTestMediaManager(&p)

	v := m.AttachVideo("https://www.youtube.com/watch?v=abc123")
	assert.False(t, v.IsMain)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", v.URL)
	assert.Empty(t, p.ImageURL)

	assert.False(t, m.SetMain(v.ID))
	assert.Empty(t, p.ImageURL)

	img := m.AttachImage("https://img/a.png")
	assert.True(t, img.IsMain)
	assert.Equal(t, "https://img/a.png", p.ImageURL)

	require.True(t, m.Remove(img.ID))
	require.Len(t, p.Media, 1)
	assert.False(t, p.Media[0].IsMain)
	assert.Empty(t, p.ImageURL)
}

func TestUnknownMediaIDsAreIgnored(t *testing.T) {
	p := models.Project{}
	m := newTestMediaManager(&p)
	m.AttachImage("A")
	before := m.Items()

	assert.False(t, m.Remove("missing"))
	assert.False(t, m.SetMain("missing"))
	assert.Equal(t, before, m.Items())
	assert.Equal(t, "A", p.ImageURL)
}

func TestItemsReturnsCopy(t *testing.T) {
	p := models.Project{}
	m := newTestMediaManager(&p)
	m.AttachImage("A")

	items := m.Items()
	items[0].URL = "changed"
	assert.Equal(t, "A", p.Media[0].URL)
}

func TestMediaOperationsPreserveMainImageRules(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := models.Project{}
	m := newTestMediaManager(&p)

	for step := 0; step < 500; step++ {
		var ids []string
		for _, item := range p.Media {
			ids = append(ids, item.ID)
		}
		pick := func() string {
			if len(ids) == 0 || rng.Intn(5) == 0 {
				return "unknown"
			}
			return ids[rng.Intn(len(ids))]
		}

		switch rng.Intn(4) {
		case 0:
			m.AttachImage("img-" + strings.Repeat("x", rng.Intn(3)))
		case 1:
			m.AttachVideo("https://youtu.be/v")
		case 2:
			m.Remove(pick())
		case 3:
			m.SetMain(pick())
		}
		assertMainImageRules(t, p)
	}
}

func TestAttachImageBytes(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	p := models.Project{}
	m := newTestMediaManager(&p)

	item, err := m.AttachImageBytes(png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.URL, "data:image/png;base64,"))
	assert.True(t, item.IsMain)
	assert.Equal(t, item.URL, p.ImageURL)

	_, err = m.AttachImageBytes([]byte("just some text, not a picture"))
	assert.True(t, errs.IsUnsupportedMediaTypeError(err))
	assert.Len(t, p.Media, 1)
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/gif;base64,R0lG", DataURI("image/gif", []byte("GIF")))
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=abc&t=10s", "https://www.youtube.com/embed/abc"},
		{"https://m.youtube.com/watch?v=abc", "https://www.youtube.com/embed/abc"},
		{"https://youtu.be/abc", "https://www.youtube.com/embed/abc"},
		{"https://www.youtube.com/embed/abc", "https://www.youtube.com/embed/abc"},
		{"https://vimeo.com/12345", "https://vimeo.com/12345"},
		{"https://www.youtube.com/watch", "https://www.youtube.com/watch"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EmbedURL(tt.in))
		})
	}
}

func TestNormalizeMedia(t *testing.T) {
	tests := []struct {
		name     string
		in       models.Project
		wantURLs []string
		wantMain string
	}{
		{
			name:     "empty stays empty",
			in:       models.Project{},
			wantMain: "",
		},
		{
			name:     "bare image url becomes main media",
			in:       models.Project{ImageURL: " https://img/a.png "},
			wantURLs: []string{"https://img/a.png"},
			wantMain: "https://img/a.png",
		},
		{
			name: "first image promoted when none is main",
			in: models.Project{Media: []models.MediaItem{
				{Type: models.MediaVideo, URL: "https://v"},
				{Type: models.MediaImage, URL: "A"},
				{Type: models.MediaImage, URL: "B"},
			}},
			wantURLs: []string{"https://v", "A", "B"},
			wantMain: "A",
		},
		{
			name: "first main wins and stale image url is replaced",
			in: models.Project{ImageURL: "stale", Media: []models.MediaItem{
				{ID: "a", Type: models.MediaImage, URL: "A"},
				{ID: "b", Type: models.MediaImage, URL: "B", IsMain: true},
				{ID: "c", Type: models.MediaImage, URL: "C", IsMain: true},
			}},
			wantURLs: []string{"A", "B", "C"},
			wantMain: "B",
		},
		{
			name: "video main flag cleared",
			in: models.Project{Media: []models.MediaItem{
				{Type: models.MediaVideo, URL: "https://youtu.be/x", IsMain: true},
			}},
			wantURLs: []string{"https://www.youtube.com/embed/x"},
			wantMain: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			normalizeMedia(&p, sequentialIDs())

			var urls []string
			for _, item := range p.Media {
				assert.NotEmpty(t, item.ID)
				urls = append(urls, item.URL)
			}
			assert.Equal(t, tt.wantURLs, urls)
			assert.Equal(t, tt.wantMain, p.ImageURL)
			assertMainImageRules(t, p)
		})
	}
}

func TestCatalogMediaManagerSharesIDGenerator(t *testing.T) {
	c, _ := newTestCatalog(t)
	p := models.Project{}

	item := c.MediaManager(&p).AttachImage("A")
	assert.Equal(t, "id-1", item.ID)
}
