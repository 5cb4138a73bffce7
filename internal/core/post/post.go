// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post is the presentation-facing domain around [search.Item]: the
form submitted to register a post, the view returned to clients, and the
service that bridges HTTP handlers to the search core (Indexer, Pager,
PowGate).
*/
package post

import "github.com/taibuivan/ribbit/internal/search"

// Form is the client-submitted payload for registering a new post.
type Form struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	Author          string   `json:"author"`
	SearchTags      []string `json:"search_tags"`
	Space           *string  `json:"space,omitempty"`
	ReplyScope      *string  `json:"reply_scope,omitempty"`
	VisibilityScope *string  `json:"visibility_scope,omitempty"`
}

// View is the presentation shape returned to clients — a [search.Item]
// enriched with resolved author display info.
type View struct {
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	Author          AuthorView `json:"author"`
	SearchTags      []string   `json:"search_tags"`
	Space           *string    `json:"space,omitempty"`
	ReplyScope      *string    `json:"reply_scope,omitempty"`
	VisibilityScope *string    `json:"visibility_scope,omitempty"`
}

// AuthorView is the resolved, display-ready author handle embedded in a
// post [View].
type AuthorView struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func itemFromForm(form Form) search.Item {
	return search.Item{
		Title:           form.Title,
		Body:            form.Body,
		Author:          form.Author,
		SearchTags:      form.SearchTags,
		Space:           form.Space,
		ReplyScope:      form.ReplyScope,
		VisibilityScope: form.VisibilityScope,
	}
}
