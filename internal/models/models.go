// ABOUTME: Core data models for posts and post drafts.
// ABOUTME: Provides origin tagging, constructors, and struct-tag validation.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Origin records where a post's authoritative copy lives.
type Origin int

const (
	// OriginUnknown means the post was handed to the store without a tag.
	OriginUnknown Origin = iota
	// OriginRemote marks a post that is retrievable from the API.
	OriginRemote
	// OriginLocal marks a post that exists only in client state.
	OriginLocal
)

// String returns the lowercase origin name.
func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Post is a single record of the posts resource.
type Post struct {
	ID     int    `json:"id" validate:"gte=1"`
	UserID int    `json:"userId" validate:"gte=1"`
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"max=10000"`
	Origin Origin `json:"-" validate:"-"`
}

// Draft is the payload of a create request: a post without an id.
type Draft struct {
	UserID int    `json:"userId" validate:"gte=1"`
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"max=10000"`
}

// NewDraft creates a draft with surrounding whitespace trimmed from the title.
func NewDraft(userID int, title, body string) Draft {
	return Draft{
		UserID: userID,
		Title:  strings.TrimSpace(title),
		Body:   body,
	}
}

// NewLocalPost creates a local-only post from a draft with the given id.
func NewLocalPost(id int, d Draft) Post {
	return Post{
		ID:     id,
		UserID: d.UserID,
		Title:  d.Title,
		Body:   d.Body,
		Origin: OriginLocal,
	}
}

// Draft returns the post's fields without the id.
func (p Post) Draft() Draft {
	return Draft{UserID: p.UserID, Title: p.Title, Body: p.Body}
}

// Validate checks the draft against its field constraints.
func (d Draft) Validate() error {
	return describe(validate.Struct(d))
}

// Validate checks the post against its field constraints.
func (p Post) Validate() error {
	return describe(validate.Struct(p))
}

// describe flattens validator errors into a single readable error.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid post: %s", strings.Join(parts, "; "))
}
