package post_service

import (
	"testing"

	"devlog-post-service/internal/custom_errors"
	model "devlog-post-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "trims and drops empty", in: []string{" go ", "", "  "}, want: []string{"go"}},
		{name: "keeps first duplicate", in: []string{"sql", "go", "sql", " go"}, want: []string{"sql", "go"}},
		{name: "case is significant", in: []string{"Go", "go"}, want: []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTags(tt.in))
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		dto     *model.UpdatePostDTO
		wantErr error
	}{
		{name: "nothing supplied", dto: &model.UpdatePostDTO{}},
		{name: "empty optional field", dto: &model.UpdatePostDTO{Tips: strPtr("")}},
		{name: "blank title", dto: &model.UpdatePostDTO{Title: strPtr("\t")}, wantErr: custom_errors.ErrPostValidation},
		{name: "empty content", dto: &model.UpdatePostDTO{Content: strPtr("")}, wantErr: custom_errors.ErrPostValidation},
		{name: "nil request", dto: nil, wantErr: custom_errors.ErrPostValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUpdate(tt.dto)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthorize(t *testing.T) {
	post := &model.Post{ID: 1, AuthorID: 7}

	assert.NoError(t, authorize(post, 7))
	assert.ErrorIs(t, authorize(post, 8), custom_errors.ErrForbidden)
}
