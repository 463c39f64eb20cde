package domain

import (
	"strings"
	"time"
)

type PostId string

// Post is a content record owned by the remote posts API.
// JSON names follow the API's wire format.
type Post struct {
	Id          PostId    `json:"_id" validate:"required"`
	Img         string    `json:"img"`
	Description *string   `json:"discription"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DescriptionText returns the description or "" when the post has none.
func (p Post) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

func (p Post) HasDescription() bool {
	return strings.TrimSpace(p.DescriptionText()) != ""
}

type Posts []Post

// Find returns the post with the given id.
func (ps Posts) Find(id PostId) (Post, bool) {
	for _, p := range ps {
		if p.Id == id {
			return p, true
		}
	}
	return Post{}, false
}

// Without returns a copy of ps with the post id removed.
func (ps Posts) Without(id PostId) Posts {
	out := make(Posts, 0, len(ps))
	for _, p := range ps {
		if p.Id != id {
			out = append(out, p)
		}
	}
	return out
}
