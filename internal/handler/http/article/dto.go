// Package article provides the HTTP handlers for reading, searching,
// writing, modifying and deleting blog articles.
package article

import (
	"time"

	"duo-blog/internal/domain/entity"
	"duo-blog/internal/utils/text"
)

// ExcerptLength is the number of characters shown in list excerpts.
const ExcerptLength = 140

// Stored bodies are kept as submitted; unsafe markup is removed on the way out.
var contentSanitizer = text.NewSanitizer()

type AuthorDTO struct {
	ID   int64  `json:"id" example:"7"`
	Name string `json:"name" example:"alice"`
}

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID        int64      `json:"id" example:"1"`
	Title     string     `json:"title" example:"Hello, world"`
	Content   string     `json:"content" example:"<p>First post.</p>"`
	Excerpt   string     `json:"excerpt" example:"First post."`
	Author    *AuthorDTO `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at" example:"2026-01-02T10:00:00Z"`
	UpdatedAt time.Time  `json:"updated_at" example:"2026-01-02T10:00:00Z"`
}

// articleRequest is the body of create and update requests.
type articleRequest struct {
	Title   string `json:"title" example:"Hello, world"`
	Content string `json:"content" example:"<p>First post.</p>"`
}

// rejectedResponse echoes the submitted article together with the reason
// it was refused, so a client can redisplay the form.
type rejectedResponse struct {
	Article      articleRequest `json:"article"`
	ErrorMessage string         `json:"error_message" example:"Title and content are required."`
}

func toDTO(a *entity.Article) DTO {
	content := contentSanitizer.Sanitize(a.Content)
	dto := DTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   content,
		Excerpt:   text.Excerpt(content, ExcerptLength),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		dto.Author = &AuthorDTO{ID: a.Author.ID, Name: a.Author.Name}
	}
	return dto
}

func toDTOs(articles []*entity.Article) []DTO {
	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			dtos = append(dtos, toDTO(a))
		}
	}
	return dtos
}
