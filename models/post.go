package models

// PostAuthor identifies the author of a blog post.
type PostAuthor struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// PostSeo carries per-post SEO overrides, null when the post has none.
type PostSeo struct {
	MetaTitle       LocalizedText `json:"meta_title"`
	MetaDescription LocalizedText `json:"meta_description"`
	Keywords        []string      `json:"keywords"`
}

// Post is a blog article.
type Post struct {
	ID          int           `json:"id"`
	Slug        string        `json:"slug"`
	Title       LocalizedText `json:"title"`
	Content     LocalizedText `json:"content"`
	Excerpt     LocalizedText `json:"excerpt"`
	Thumbnail   *string       `json:"thumbnail"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Author      PostAuthor    `json:"author"`
	IsPublished bool          `json:"is_published"`
	PublishedAt *string       `json:"published_at"`
	ReadingTime int           `json:"reading_time"`
	ViewsCount  int           `json:"views_count"`
	Seo         *PostSeo      `json:"seo"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
