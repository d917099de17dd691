package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/picshare/picshare-go/internal/middleware"
	"github.com/picshare/picshare-go/internal/model"
	"github.com/picshare/picshare-go/internal/service"
)

const maxUploadBytes = 10 << 20 // 10MB

// ImageHandler handles HTTP requests for image posts and engagement.
type ImageHandler struct {
	service *service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(svc *service.ImageService) *ImageHandler {
	return &ImageHandler{service: svc}
}

// HandleUpload handles POST /api/images/upload requests. Expects multipart
// form data with a "file" part and a "caption" field.
func (h *ImageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("no image file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("failed to read image file"))
		return
	}

	resp, err := h.service.Upload(r.Context(), user, r.FormValue("caption"), data, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrCaptionRequired), errors.Is(err, service.ErrImageDataRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /api/images requests.
func (h *ImageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, images)
}

// HandleGet handles GET /api/images/{id} requests.
func (h *ImageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/images/{id} requests.
func (h *ImageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	err := h.service.Delete(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotImageOwner):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "image deleted successfully"})
}

// HandleLike handles POST /api/images/{id}/like requests. Likes toggle: a
// second like from the same user removes the first.
func (h *ImageHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	resp, err := h.service.ToggleLike(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		case errors.Is(err, service.ErrImageNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleComment handles POST /api/images/{id}/comments requests.
func (h *ImageHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.AddComment(r.Context(), user, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAuthenticated):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		case errors.Is(err, service.ErrCommentTextRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrImageNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
