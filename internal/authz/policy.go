package authz

import (
	"strings"

	"github.com/picshare/picshare-go/internal/model"
)

// Policy decides whether a resolved identity may perform an action on a
// resource. It holds only the immutable admin allow-list configured at
// startup; every decision is a pure function of its arguments.
type Policy struct {
	adminEmails map[string]struct{}
}

// NewPolicy builds a Policy from the configured admin email allow-list.
// Emails are normalized to lower case so membership checks are
// case-insensitive.
func NewPolicy(adminEmails []string) *Policy {
	set := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &Policy{adminEmails: set}
}

// IsAdmin reports whether the email is on the admin allow-list.
func (p *Policy) IsAdmin(email string) bool {
	_, ok := p.adminEmails[strings.ToLower(email)]
	return ok
}

// CanUpload reports whether the identity may upload images. Upload is the
// one admin-gated action.
func (p *Policy) CanUpload(user *model.User) bool {
	return user != nil && p.IsAdmin(user.Email)
}

// CanDelete reports whether the identity may delete the image. Only the
// uploader may delete; admin status grants no delete rights over others'
// images.
func (p *Policy) CanDelete(user *model.User, image *model.Image) bool {
	return user != nil && image != nil && user.ID == image.UploaderID
}

// CanLike reports whether the identity may like images. Any resolved
// identity qualifies.
func (p *Policy) CanLike(user *model.User) bool {
	return user != nil
}

// CanComment reports whether the identity may comment on images. Any
// resolved identity qualifies.
func (p *Policy) CanComment(user *model.User) bool {
	return user != nil
}
