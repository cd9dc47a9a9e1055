// ABOUTME: Tests for post models, origin names, and validation rules.
// ABOUTME: Uses table-driven cases in the style of the repository layer tests.
package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftValidation(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{"valid draft", NewDraft(1, "New Post", "New Body"), false},
		{"empty body allowed", NewDraft(1, "Title only", ""), false},
		{"missing user", NewDraft(0, "New Post", "New Body"), true},
		{"blank title", NewDraft(1, "   ", "New Body"), true},
		{"title too long", NewDraft(1, strings.Repeat("x", 201), ""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostValidationRequiresID(t *testing.T) {
	p := Post{UserID: 1, Title: "Original Title"}
	err := p.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ID")

	p.ID = 1
	assert.NoError(t, p.Validate())
}

func TestNewLocalPost(t *testing.T) {
	p := NewLocalPost(101, NewDraft(1, "Local Post", "Local Body"))

	assert.Equal(t, 101, p.ID)
	assert.Equal(t, OriginLocal, p.Origin)
	assert.Equal(t, Draft{UserID: 1, Title: "Local Post", Body: "Local Body"}, p.Draft())
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "remote", OriginRemote.String())
	assert.Equal(t, "local", OriginLocal.String())
	assert.Equal(t, "unknown", OriginUnknown.String())
}
