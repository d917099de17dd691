package model

import (
	"encoding/base64"
	"fmt"
	"time"
)

// Image represents a stored image post with its engagement state.
type Image struct {
	ID          string
	Caption     string
	ContentType string
	Data        []byte
	UploaderID  int64
	Uploader    UserRef
	Likes       []UserRef
	Comments    []Comment
	CreatedAt   time.Time
}

// Comment is a single entry in an image's comment log.
type Comment struct {
	ID        int64
	ImageID   string
	Text      string
	Author    UserRef
	CreatedAt time.Time
}

// CommentRequest represents a comment creation request.
type CommentRequest struct {
	Text string `json:"text"`
}

// CommentResponse represents a comment in API responses.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// ImageResponse represents an image post in API responses. The binary payload
// is carried as a browser-ready data URL, matching what clients render directly.
type ImageResponse struct {
	ID        string            `json:"id"`
	Caption   string            `json:"caption"`
	Uploader  UserRef           `json:"uploader"`
	Likes     []UserRef         `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	ImageURL  string            `json:"imageUrl"`
}

// DataURL encodes the image payload as a data: URL.
func (img *Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.ContentType, base64.StdEncoding.EncodeToString(img.Data))
}

// ToResponse converts an Image to its API representation. Likes and comments
// are always rendered as non-nil slices so clients see [] rather than null.
func (img *Image) ToResponse() ImageResponse {
	likes := make([]UserRef, len(img.Likes))
	copy(likes, img.Likes)

	comments := make([]CommentResponse, len(img.Comments))
	for i, c := range img.Comments {
		comments[i] = CommentResponse{
			ID:        c.ID,
			Text:      c.Text,
			User:      c.Author,
			CreatedAt: c.CreatedAt,
		}
	}

	return ImageResponse{
		ID:        img.ID,
		Caption:   img.Caption,
		Uploader:  img.Uploader,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: img.CreatedAt,
		ImageURL:  img.DataURL(),
	}
}
