package frontend_domain

import (
	"html/template"
	"time"

	"github.com/itchan-dev/postadmin/shared/domain"
)

// PlaceholderImage is shown for posts without an image.
const PlaceholderImage template.URL = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='320' height='200'%3E%3Crect width='100%25' height='100%25' fill='%23ddd'/%3E%3Ctext x='50%25' y='50%25' text-anchor='middle' fill='%23888' font-family='sans-serif'%3ENo image%3C/text%3E%3C/svg%3E"

// Post is a post ready for the card template.
type Post struct {
	domain.Post
	DescriptionHTML template.HTML
	ImageURL        template.URL
}

func (p Post) CreatedDate() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.Format("2 Jan 2006")
}

func (p Post) CreatedISO() string {
	return p.CreatedAt.UTC().Format(time.RFC3339)
}

type EditDialog struct {
	Post      Post
	Draft     string
	CanSubmit bool
	MaxLen    int
}

type DeleteDialog struct {
	Post Post
}

type PostsPageData struct {
	Posts       []Post
	ShowLoading bool
	Empty       bool
	Error       string
	Message     string
	Busy        bool
	UpdatedAt   time.Time
	Edit        *EditDialog
	Delete      *DeleteDialog
}
