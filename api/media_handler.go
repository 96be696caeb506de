package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/rpupo63/portfolio-catalog-backend/catalog"
	"github.com/rpupo63/portfolio-catalog-backend/errs"
	"github.com/rpupo63/portfolio-catalog-backend/models"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	catalog   *catalog.Catalog
}

func newMediaHandler(c *catalog.Catalog) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		catalog:   c,
	}
}

// edit loads the project named in the path, applies fn to a media manager
// over a copy and saves the result.
func (h mediaHandler) edit(w http.ResponseWriter, r *http.Request, fn func(m *catalog.MediaManager) (*models.MediaItem, error)) {
	project, err := h.catalog.FindByID(chi.URLParam(r, "projectID"))
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	item, err := fn(h.catalog.MediaManager(&project))
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	updated, err := h.catalog.Update(r.Context(), project)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if item != nil {
		status = http.StatusCreated
		// ids survive normalization, so the stored copy can be returned
		if stored, ok := lo.Find(updated.Media, func(m models.MediaItem) bool { return m.ID == item.ID }); ok {
			item = &stored
		}
	}
	h.responder.WriteJSONStatus(w, status, MediaResponse{Project: updated, Media: item})
}

// attachImage adds an image from a multipart upload (field "file") or a JSON {url}
// @Summary Attach image
// @Tags Media
// @Accept multipart/form-data,json
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 201 {object} MediaResponse "Project with the new image"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid image"
// @Failure 415 {object} ErrorResponse "Unsupported Media Type - Upload is not an image"
// @Router /project/{projectID}/media/image [post]
func (h mediaHandler) attachImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "multipart/form-data" {
			data, err := readUpload(w, r)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			h.edit(w, r, func(m *catalog.MediaManager) (*models.MediaItem, error) {
				item, err := m.AttachImageBytes(data)
				if err != nil {
					return nil, err
				}
				return &item, nil
			})
			return
		}

		var req MediaURLRequest
		if err := decodeJSON(w, r, &req, "media"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		imageURL, err := validateImageURL(req.URL)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.edit(w, r, func(m *catalog.MediaManager) (*models.MediaItem, error) {
			item := m.AttachImage(imageURL)
			return &item, nil
		})
	}
}

// attachVideo adds a video by URL. YouTube links are stored in embed form.
// @Summary Attach video
// @Tags Media
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param media body MediaURLRequest true "Video URL"
// @Success 201 {object} MediaResponse "Project with the new video"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid URL"
// @Router /project/{projectID}/media/video [post]
func (h mediaHandler) attachVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MediaURLRequest
		if err := decodeJSON(w, r, &req, "media"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.URL = strings.TrimSpace(req.URL)
		err := validation.ValidateStruct(&req,
			validation.Field(&req.URL, validation.Required, is.URL),
		)
		if err != nil {
			h.responder.WriteError(w, errs.FromValidation(err, ""))
			return
		}

		h.edit(w, r, func(m *catalog.MediaManager) (*models.MediaItem, error) {
			item := m.AttachVideo(req.URL)
			return &item, nil
		})
	}
}

// removeMedia drops a media item. Removing the main image promotes the next image.
// @Summary Remove media
// @Tags Media
// @Produce json
// @Param projectID path string true "Project ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {object} MediaResponse "Project without the item"
// @Failure 404 {object} ErrorResponse "Not Found - Project or media not found"
// @Router /project/{projectID}/media/{mediaID} [delete]
func (h mediaHandler) removeMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID := chi.URLParam(r, "mediaID")
		h.edit(w, r, func(m *catalog.MediaManager) (*models.MediaItem, error) {
			if !m.Remove(mediaID) {
				return nil, errs.NewNotFound("media")
			}
			return nil, nil
		})
	}
}

// setMainImage makes an image the project's main image
// @Summary Set main image
// @Tags Media
// @Produce json
// @Param projectID path string true "Project ID"
// @Param mediaID path string true "Media ID"
// @Success 200 {object} MediaResponse "Project with the new main image"
// @Failure 400 {object} ErrorResponse "Bad Request - Media is not an image"
// @Failure 404 {object} ErrorResponse "Not Found - Project or media not found"
// @Router /project/{projectID}/media/{mediaID}/main [put]
func (h mediaHandler) setMainImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mediaID := chi.URLParam(r, "mediaID")
		h.edit(w, r, func(m *catalog.MediaManager) (*models.MediaItem, error) {
			item, ok := lo.Find(m.Items(), func(item models.MediaItem) bool { return item.ID == mediaID })
			if !ok {
				return nil, errs.NewNotFound("media")
			}
			if !item.IsImage() {
				return nil, errs.NewInvalidFieldError("mediaID", "only images can be the main image")
			}
			m.SetMain(mediaID)
			return nil, nil
		})
	}
}

// readUpload returns the bytes of the multipart "file" field
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodyBytes)
	if err := r.ParseMultipartForm(maxUploadBodyBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		}
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errs.NewMissingRequiredFieldError("file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	if len(data) == 0 {
		return nil, errs.NewMissingRequiredFieldError("file")
	}
	return data, nil
}

// validateImageURL accepts web URLs and inline image data URIs
func validateImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "data:image/") {
		return raw, nil
	}
	err := validation.Validate(raw, validation.Required, is.URL)
	if err != nil {
		return "", errs.FromValidation(validation.Errors{"url": err}, "")
	}
	return raw, nil
}
