// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ribbit/internal/platform/validate"
	"github.com/taibuivan/ribbit/pkg/pointer"
)

// Service is the directory's business logic, consulted by the search
// presentation layer whenever a post's author handle needs to be resolved.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve looks up handle and returns its display info. A missing or
// failed lookup degrades to the handle itself rather than failing the
// caller — an unresolved author must never break a search result.
func (service *Service) Resolve(ctx context.Context, handle string) Info {
	entry, err := service.repo.GetAuthor(ctx, handle)
	if err != nil {
		service.logger.Debug("author_unresolved", slog.String("handle", handle), slog.Any("err", err))
		return Info{DisplayName: handle}
	}

	return Info{DisplayName: entry.DisplayName, AvatarURL: pointer.Val(entry.AvatarURL)}
}

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, handle string) (*Author, error) {
	return service.repo.GetAuthor(context, handle)
}

func (service *Service) CreateAuthor(context context.Context, entry *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldHandle, entry.Handle).Slug(FieldHandle, entry.Handle)
	validator.Required(FieldDisplayName, entry.DisplayName).MaxLen(FieldDisplayName, entry.DisplayName, 200)
	if entry.AvatarURL != nil {
		validator.URL(FieldAvatarURL, *entry.AvatarURL)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(context, entry); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.String("handle", entry.Handle))
	return nil
}

func (service *Service) UpdateAuthor(context context.Context, handle string, entry *Author) error {
	entry.Handle = handle
	validator := &validate.Validator{}

	validator.Required(FieldDisplayName, entry.DisplayName).MaxLen(FieldDisplayName, entry.DisplayName, 200)
	if entry.AvatarURL != nil {
		validator.URL(FieldAvatarURL, *entry.AvatarURL)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(context, entry); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.String("handle", handle))
	return nil
}

func (service *Service) DeleteAuthor(context context.Context, handle string) error {
	if err := service.repo.DeleteAuthor(context, handle); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("handle", handle))
	return nil
}
