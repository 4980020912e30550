package post

import (
	"fmt"
	"regexp"
	"time"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// MaxSlugLength is the maximum allowed post identifier length.
const MaxSlugLength = 256

// Author identifies a post author. Equality is by slug.
type Author struct {
	Slug string
	Name string
}

// Category is a named content category referenced by posts.
type Category struct {
	Slug string
	Name string
}

// Post is the post aggregate (immutable value object).
type Post struct {
	id          string
	title       string
	excerpt     string
	content     string
	publishedAt time.Time
	author      Author
	categories  []Category
	tags        []string
	featured    bool
}

// New validates and creates a Post.
// ID: lowercase slug (^[a-z0-9-]+$), 1-256 chars. Title: non-empty.
// Excerpt, content, categories, and tags may be empty.
func New(
	id, title, excerpt, content string,
	publishedAt time.Time,
	author Author,
	categories []Category,
	tags []string,
	featured bool,
) (Post, error) {
	if id == "" {
		return Post{}, fmt.Errorf("post ID is required")
	}
	if len(id) > MaxSlugLength {
		return Post{}, fmt.Errorf("post ID too long (max %d)", MaxSlugLength)
	}
	if !slugRegex.MatchString(id) {
		return Post{}, fmt.Errorf("post ID must be a lowercase slug")
	}
	if title == "" {
		return Post{}, fmt.Errorf("title is required")
	}

	return Post{
		id:          id,
		title:       title,
		excerpt:     excerpt,
		content:     content,
		publishedAt: publishedAt,
		author:      author,
		categories:  cloneCategories(categories),
		tags:        cloneStrings(tags),
		featured:    featured,
	}, nil
}

// Reconstruct creates a Post without validation (storage hydration).
func Reconstruct(
	id, title, excerpt, content string,
	publishedAt time.Time,
	author Author,
	categories []Category,
	tags []string,
	featured bool,
) Post {
	return Post{
		id:          id,
		title:       title,
		excerpt:     excerpt,
		content:     content,
		publishedAt: publishedAt,
		author:      author,
		categories:  categories,
		tags:        tags,
		featured:    featured,
	}
}

// ID returns the post identifier.
func (p *Post) ID() string { return p.id }

// Title returns the post title.
func (p *Post) Title() string { return p.title }

// Excerpt returns the short excerpt.
func (p *Post) Excerpt() string { return p.excerpt }

// Content returns the full body text.
func (p *Post) Content() string { return p.content }

// PublishedAt returns the publication timestamp.
func (p *Post) PublishedAt() time.Time { return p.publishedAt }

// Author returns the post author.
func (p *Post) Author() Author { return p.author }

// Categories returns a copy of the ordered category set.
func (p *Post) Categories() []Category { return cloneCategories(p.categories) }

// Tags returns a copy of the tag set.
func (p *Post) Tags() []string { return cloneStrings(p.tags) }

// Featured reports whether the post is marked featured.
func (p *Post) Featured() bool { return p.featured }

// CategorySlugs returns the category slugs in order.
func (p *Post) CategorySlugs() []string {
	slugs := make([]string, len(p.categories))
	for i, c := range p.categories {
		slugs[i] = c.Slug
	}
	return slugs
}

// SharesCategory reports whether p and other have at least one common category slug.
func (p *Post) SharesCategory(other *Post) bool {
	for _, a := range p.categories {
		for _, b := range other.categories {
			if a.Slug == b.Slug {
				return true
			}
		}
	}
	return false
}

// SharedTagCount returns the number of tags p and other have in common.
func (p *Post) SharedTagCount(other *Post) int {
	set := make(map[string]bool, len(other.tags))
	for _, t := range other.tags {
		set[t] = true
	}
	n := 0
	for _, t := range p.tags {
		if set[t] {
			n++
		}
	}
	return n
}

func cloneCategories(cs []Category) []Category {
	if cs == nil {
		return nil
	}
	c := make([]Category, len(cs))
	copy(c, cs)
	return c
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	s := make([]string, len(ss))
	copy(s, ss)
	return s
}
