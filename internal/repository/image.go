package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/picshare/picshare-go/internal/model"
)

var (
	ErrImageNotFound = errors.New("image not found")
)

// ImageRepository handles image and engagement persistence operations.
type ImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new ImageRepository.
func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

const imageColumns = `i.id, i.caption, i.content_type, i.data, i.uploader_id, u.username, i.created_at`

// Create inserts a new image record. The caller assigns the image ID.
func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	query := `INSERT INTO images (id, caption, content_type, data, uploader_id) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, img.ID, img.Caption, img.ContentType, img.Data, img.UploaderID)
	return err
}

// Get retrieves an image by ID with its likers and comments populated.
func (r *ImageRepository) Get(ctx context.Context, id string) (*model.Image, error) {
	query := `SELECT ` + imageColumns + `
		FROM images i JOIN users u ON u.id = i.uploader_id
		WHERE i.id = ?`

	img := &model.Image{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&img.ID, &img.Caption, &img.ContentType, &img.Data,
		&img.UploaderID, &img.Uploader.Username, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	img.Uploader.ID = img.UploaderID

	if err := r.loadEngagement(ctx, img); err != nil {
		return nil, err
	}

	return img, nil
}

// List retrieves all images, newest first, with engagement populated.
func (r *ImageRepository) List(ctx context.Context) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + `
		FROM images i JOIN users u ON u.id = i.uploader_id
		ORDER BY i.created_at DESC, i.id DESC`

	return r.queryImages(ctx, query)
}

// ListByUploader retrieves a single user's images, newest first, with
// engagement populated.
func (r *ImageRepository) ListByUploader(ctx context.Context, uploaderID int64) ([]model.Image, error) {
	query := `SELECT ` + imageColumns + `
		FROM images i JOIN users u ON u.id = i.uploader_id
		WHERE i.uploader_id = ?
		ORDER BY i.created_at DESC, i.id DESC`

	return r.queryImages(ctx, query, uploaderID)
}

// Delete removes an image along with its likes and comments. Engagement rows
// cannot outlive their image, so all three deletes run in one transaction.
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM image_likes WHERE image_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM image_comments WHERE image_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrImageNotFound
	}

	return tx.Commit()
}

// Likers returns the image's liker set in like-arrival order.
func (r *ImageRepository) Likers(ctx context.Context, imageID string) ([]model.UserRef, error) {
	query := `SELECT l.user_id, u.username
		FROM image_likes l JOIN users u ON u.id = l.user_id
		WHERE l.image_id = ?
		ORDER BY l.created_at ASC, l.user_id ASC`

	rows, err := r.db.QueryContext(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likers []model.UserRef
	for rows.Next() {
		var ref model.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username); err != nil {
			return nil, err
		}
		likers = append(likers, ref)
	}
	return likers, rows.Err()
}

// InsertLike adds a user to the image's liker set.
func (r *ImageRepository) InsertLike(ctx context.Context, imageID string, userID int64) error {
	query := `INSERT INTO image_likes (image_id, user_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, imageID, userID)
	return err
}

// DeleteLike removes a user from the image's liker set.
func (r *ImageRepository) DeleteLike(ctx context.Context, imageID string, userID int64) error {
	query := `DELETE FROM image_likes WHERE image_id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query, imageID, userID)
	return err
}

// InsertComment appends a comment and sets the generated ID on the comment
// struct. Comment log order is the auto-increment ID order.
func (r *ImageRepository) InsertComment(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO image_comments (image_id, user_id, text, created_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.ImageID, c.Author.ID, c.Text, c.CreatedAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

// Comments returns the image's comment log in append order.
func (r *ImageRepository) Comments(ctx context.Context, imageID string) ([]model.Comment, error) {
	query := `SELECT c.id, c.image_id, c.text, c.user_id, u.username, c.created_at
		FROM image_comments c JOIN users u ON u.id = c.user_id
		WHERE c.image_id = ?
		ORDER BY c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, imageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.ImageID, &c.Text, &c.Author.ID, &c.Author.Username, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *ImageRepository) queryImages(ctx context.Context, query string, args ...any) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(
			&img.ID, &img.Caption, &img.ContentType, &img.Data,
			&img.UploaderID, &img.Uploader.Username, &img.CreatedAt,
		); err != nil {
			return nil, err
		}
		img.Uploader.ID = img.UploaderID
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range images {
		if err := r.loadEngagement(ctx, &images[i]); err != nil {
			return nil, err
		}
	}

	return images, nil
}

func (r *ImageRepository) loadEngagement(ctx context.Context, img *model.Image) error {
	likers, err := r.Likers(ctx, img.ID)
	if err != nil {
		return err
	}
	img.Likes = likers

	comments, err := r.Comments(ctx, img.ID)
	if err != nil {
		return err
	}
	img.Comments = comments

	return nil
}
