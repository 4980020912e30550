package post

import (
	"time"

	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
)

// postDTO is the JSON storage shape of a post.
type postDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Content     string        `json:"content,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
	Author      authorDTO     `json:"author"`
	Categories  []categoryDTO `json:"categories,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Featured    bool          `json:"featured,omitempty"`
}

type authorDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type categoryDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func toDTO(p *dompost.Post) postDTO {
	cats := p.Categories()
	catDTOs := make([]categoryDTO, len(cats))
	for i, c := range cats {
		catDTOs[i] = categoryDTO{Slug: c.Slug, Name: c.Name}
	}
	return postDTO{
		ID:          p.ID(),
		Title:       p.Title(),
		Excerpt:     p.Excerpt(),
		Content:     p.Content(),
		PublishedAt: p.PublishedAt(),
		Author:      authorDTO{Slug: p.Author().Slug, Name: p.Author().Name},
		Categories:  catDTOs,
		Tags:        p.Tags(),
		Featured:    p.Featured(),
	}
}

func fromDTO(d postDTO) dompost.Post {
	cats := make([]dompost.Category, len(d.Categories))
	for i, c := range d.Categories {
		cats[i] = dompost.Category{Slug: c.Slug, Name: c.Name}
	}
	return dompost.Reconstruct(
		d.ID, d.Title, d.Excerpt, d.Content, d.PublishedAt,
		dompost.Author{Slug: d.Author.Slug, Name: d.Author.Name},
		cats, d.Tags, d.Featured,
	)
}
