package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/picshare/picshare-go/internal/authz"
	"github.com/picshare/picshare-go/internal/model"
	"github.com/picshare/picshare-go/internal/repository"
)

var (
	ErrImageNotFound       = errors.New("image not found")
	ErrCaptionRequired     = errors.New("caption is required")
	ErrImageDataRequired   = errors.New("image file is required")
	ErrCommentTextRequired = errors.New("comment text is required")
	ErrUploadForbidden     = errors.New("only admins can upload images")
	ErrNotImageOwner       = errors.New("not authorized to delete this image")
)

// ImageStore is the persistence surface the image service needs. Implemented
// by repository.ImageRepository.
type ImageStore interface {
	Create(ctx context.Context, img *model.Image) error
	Get(ctx context.Context, id string) (*model.Image, error)
	List(ctx context.Context) ([]model.Image, error)
	ListByUploader(ctx context.Context, uploaderID int64) ([]model.Image, error)
	Delete(ctx context.Context, id string) error
	InsertLike(ctx context.Context, imageID string, userID int64) error
	DeleteLike(ctx context.Context, imageID string, userID int64) error
	InsertComment(ctx context.Context, c *model.Comment) error
}

// ImageService handles image upload, deletion and engagement mutations.
// Like and comment mutations on the same image serialize through a per-image
// lock held for the whole read-modify-write, so concurrent toggles cannot
// lose updates and the comment log keeps a single arrival order. Mutations on
// different images proceed in parallel.
type ImageService struct {
	store  ImageStore
	policy *authz.Policy
	locks  *keyedMutex
}

// NewImageService creates a new ImageService.
func NewImageService(store ImageStore, policy *authz.Policy) *ImageService {
	return &ImageService{
		store:  store,
		policy: policy,
		locks:  newKeyedMutex(),
	}
}

// Upload stores a new image post. Only identities on the admin allow-list
// may upload.
func (s *ImageService) Upload(ctx context.Context, user *model.User, caption string, data []byte, contentType string) (model.ImageResponse, error) {
	if !s.policy.CanUpload(user) {
		return model.ImageResponse{}, ErrUploadForbidden
	}
	if strings.TrimSpace(caption) == "" {
		return model.ImageResponse{}, ErrCaptionRequired
	}
	if len(data) == 0 {
		return model.ImageResponse{}, ErrImageDataRequired
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	img := &model.Image{
		ID:          uuid.NewString(),
		Caption:     caption,
		ContentType: contentType,
		Data:        data,
		UploaderID:  user.ID,
	}

	if err := s.store.Create(ctx, img); err != nil {
		return model.ImageResponse{}, err
	}

	return s.getResponse(ctx, img.ID)
}

// List returns all image posts, newest first.
func (s *ImageService) List(ctx context.Context) ([]model.ImageResponse, error) {
	images, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return imagesToResponse(images), nil
}

// ListByUser returns a single user's image posts, newest first.
func (s *ImageService) ListByUser(ctx context.Context, userID int64) ([]model.ImageResponse, error) {
	images, err := s.store.ListByUploader(ctx, userID)
	if err != nil {
		return nil, err
	}
	return imagesToResponse(images), nil
}

// Get returns a single image post by ID.
func (s *ImageService) Get(ctx context.Context, id string) (model.ImageResponse, error) {
	return s.getResponse(ctx, id)
}

// Delete removes an image and its engagement state. Only the uploader may
// delete; admin status grants no rights over others' images. Holding the
// image's lock keeps deletion from interleaving with an in-flight engagement
// mutation.
func (s *ImageService) Delete(ctx context.Context, user *model.User, id string) error {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	img, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if !s.policy.CanDelete(user, img) {
		return ErrNotImageOwner
	}

	err = s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrImageNotFound) {
		return ErrImageNotFound
	}
	return err
}

// ToggleLike adds the user to the image's liker set, or removes them if
// already present, and returns the resulting image state. The read-check-write
// runs under the image's lock so two racing toggles both take effect.
func (s *ImageService) ToggleLike(ctx context.Context, user *model.User, imageID string) (model.ImageResponse, error) {
	if !s.policy.CanLike(user) {
		return model.ImageResponse{}, ErrNotAuthenticated
	}

	s.locks.lock(imageID)
	defer s.locks.unlock(imageID)

	img, err := s.store.Get(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return model.ImageResponse{}, ErrImageNotFound
		}
		return model.ImageResponse{}, err
	}

	liked := false
	for _, ref := range img.Likes {
		if ref.ID == user.ID {
			liked = true
			break
		}
	}

	if liked {
		err = s.store.DeleteLike(ctx, imageID, user.ID)
	} else {
		err = s.store.InsertLike(ctx, imageID, user.ID)
	}
	if err != nil {
		return model.ImageResponse{}, err
	}

	return s.getResponse(ctx, imageID)
}

// AddComment appends a comment with a server-assigned timestamp and returns
// the resulting image state. Appends to the same image serialize through the
// image's lock, so the visible comment order is the arrival order.
func (s *ImageService) AddComment(ctx context.Context, user *model.User, imageID, text string) (model.ImageResponse, error) {
	if !s.policy.CanComment(user) {
		return model.ImageResponse{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(text) == "" {
		return model.ImageResponse{}, ErrCommentTextRequired
	}

	s.locks.lock(imageID)
	defer s.locks.unlock(imageID)

	if _, err := s.store.Get(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return model.ImageResponse{}, ErrImageNotFound
		}
		return model.ImageResponse{}, err
	}

	comment := &model.Comment{
		ImageID:   imageID,
		Text:      text,
		Author:    model.UserRef{ID: user.ID, Username: user.Username},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.InsertComment(ctx, comment); err != nil {
		return model.ImageResponse{}, err
	}

	return s.getResponse(ctx, imageID)
}

// getResponse re-reads the image so responses reflect current persisted
// truth, not the caller's guess.
func (s *ImageService) getResponse(ctx context.Context, id string) (model.ImageResponse, error) {
	img, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return model.ImageResponse{}, ErrImageNotFound
		}
		return model.ImageResponse{}, err
	}
	return img.ToResponse(), nil
}

func imagesToResponse(images []model.Image) []model.ImageResponse {
	result := make([]model.ImageResponse, len(images))
	for i := range images {
		result[i] = images[i].ToResponse()
	}
	return result
}
