package handler

import (
	"net/http"

	"github.com/picshare/picshare-go/internal/middleware"
	"github.com/picshare/picshare-go/internal/model"
	"github.com/picshare/picshare-go/internal/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	auth   *service.AuthService
	images *service.ImageService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService, images *service.ImageService) *UserHandler {
	return &UserHandler{auth: auth, images: images}
}

// HandleProfile handles GET /api/users/profile requests, returning the
// authenticated user and their uploaded posts, newest first.
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	profile, err := h.auth.GetUser(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	posts, err := h.images.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.ProfileResponse{
		User:  profile,
		Posts: posts,
	})
}
