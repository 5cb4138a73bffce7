// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ribbit/internal/core/author"
	"github.com/taibuivan/ribbit/internal/platform/validate"
	"github.com/taibuivan/ribbit/internal/search"
	"github.com/taibuivan/ribbit/pkg/slice"
)

// AuthorResolver resolves an opaque author handle to display info. It is
// satisfied by [author.Service].
type AuthorResolver interface {
	Resolve(ctx context.Context, handle string) author.Info
}

// Service orchestrates post registration and lookup on top of the search
// core, enriching results with resolved author info.
type Service struct {
	indexer *search.Indexer
	pager   *search.Pager
	store   search.PostingsStore
	pow     *search.PowGate
	authors AuthorResolver
	logger  *slog.Logger

	// WordMax, PhraseMax, and PerPage tune the Ranker/Pager and default the
	// page size when a caller supplies none. They default to the search
	// core's compiled-in defaults and are overridable post-construction
	// (see cmd/api/main.go), the same way [search.PowGate.Difficulty] is.
	WordMax   int
	PhraseMax int
	PerPage   int
}

// NewService constructs a [Service] with its required collaborators.
func NewService(indexer *search.Indexer, pager *search.Pager, store search.PostingsStore, pow *search.PowGate, authors AuthorResolver, logger *slog.Logger) *Service {
	return &Service{
		indexer:   indexer,
		pager:     pager,
		store:     store,
		pow:       pow,
		authors:   authors,
		logger:    logger,
		WordMax:   search.DefaultWordMax,
		PhraseMax: search.DefaultPhraseMax,
		PerPage:   search.DefaultPerPage,
	}
}

// Register validates form, submits it to the Indexer behind a proof-of-work
// batch, and returns the resulting slug.
func (service *Service) Register(ctx context.Context, challenges []string, form Form) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, form.Title).MaxLen(FieldTitle, form.Title, 300)
	validator.Required(FieldAuthor, form.Author)
	if err := validator.Err(); err != nil {
		return "", err
	}

	ok, err := service.pow.ValidateBatch(ctx, challenges)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &search.Error{Kind: search.KindPowRejected, Message: "proof-of-work validation failed"}
	}

	slug, err := service.indexer.Insert(ctx, itemFromForm(form))
	if err != nil {
		return "", err
	}

	service.logger.Info("post_registered", slog.String("slug", slug))
	return slug, nil
}

// FindPosts returns a page of posts matching query. perPage selects the
// page size; a non-positive value falls back to [Service.PerPage]. When
// tagFilter is non-empty, the page is narrowed to items carrying every
// listed tag; total then reflects the filtered count rather than the
// ranker's unfiltered one.
func (service *Service) FindPosts(ctx context.Context, query string, pageNum, perPage int, tagFilter []string) ([]View, int, error) {
	if perPage <= 0 {
		perPage = service.PerPage
	}

	items, total, err := service.pager.Page(ctx, query, service.WordMax, service.PhraseMax, perPage, pageNum)
	if err != nil {
		return nil, 0, err
	}

	if len(tagFilter) > 0 {
		items = slice.Filter(items, func(item search.Item) bool {
			return hasAllTags(item.SearchTags, tagFilter)
		})
		total = len(items)
	}

	return service.toViews(ctx, items), total, nil
}

func hasAllTags(itemTags, required []string) bool {
	present := make(map[string]struct{}, len(itemTags))
	for _, t := range itemTags {
		present[t] = struct{}{}
	}
	for _, want := range required {
		if _, ok := present[want]; !ok {
			return false
		}
	}
	return true
}

// FindPost resolves a single post by slug.
func (service *Service) FindPost(ctx context.Context, slug string) (View, error) {
	item, err := service.store.ItemForRef(ctx, slug)
	if err != nil {
		return View{}, err
	}
	return service.toView(ctx, item), nil
}

// PutAlias administratively maps phrase to tags.
func (service *Service) PutAlias(ctx context.Context, phrase string, tags []string) error {
	return service.indexer.PutAlias(ctx, phrase, tags)
}

// IssueChallenge mints a fresh proof-of-work challenge for a client to solve.
func (service *Service) IssueChallenge() (string, error) {
	return service.pow.Issue()
}

func (service *Service) toViews(ctx context.Context, items []search.Item) []View {
	return slice.Map(items, func(item search.Item) View {
		return service.toView(ctx, item)
	})
}

func (service *Service) toView(ctx context.Context, item search.Item) View {
	info := service.authors.Resolve(ctx, item.Author)
	return View{
		Slug:  item.Slug,
		Title: item.Title,
		Body:  item.Body,
		Author: AuthorView{
			Handle:      item.Author,
			DisplayName: info.DisplayName,
			AvatarURL:   info.AvatarURL,
		},
		SearchTags:      item.SearchTags,
		Space:           item.Space,
		ReplyScope:      item.ReplyScope,
		VisibilityScope: item.VisibilityScope,
	}
}

// Field name constants used in validation error payloads.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
)
