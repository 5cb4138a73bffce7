// Copyright (c) 2026 Ribbit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ribbit/internal/platform/database/schema"
	"github.com/taibuivan/ribbit/internal/platform/dberr"
)

// PostgresRepository is the Postgres-backed [Repository].
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wraps an already-connected pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.RefAuthor.Handle, schema.RefAuthor.DisplayName, schema.RefAuthor.AvatarURL,
		schema.RefAuthor.CreatedAt, schema.RefAuthor.UpdatedAt,
		schema.RefAuthor.Table, schema.RefAuthor.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, schema.RefAuthor.Table, schema.RefAuthor.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += ` AND (handle ILIKE $1 OR displayname ILIKE $1)`
		countQuery += ` AND (handle ILIKE $1 OR displayname ILIKE $1)`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.RefAuthor.Handle) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.Handle, &a.DisplayName, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, nil
}

func (repository *PostgresRepository) GetAuthor(context context.Context, handle string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.RefAuthor.Handle, schema.RefAuthor.DisplayName, schema.RefAuthor.AvatarURL,
		schema.RefAuthor.CreatedAt, schema.RefAuthor.UpdatedAt,
		schema.RefAuthor.Table, schema.RefAuthor.Handle, schema.RefAuthor.DeletedAt,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, handle).Scan(
		&a.Handle, &a.DisplayName, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt,
	)

	return a, dberr.Wrap(err, "get_author")
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.RefAuthor.Table, schema.RefAuthor.Handle, schema.RefAuthor.DisplayName, schema.RefAuthor.AvatarURL,
		schema.RefAuthor.CreatedAt, schema.RefAuthor.UpdatedAt,
		schema.RefAuthor.CreatedAt, schema.RefAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.Handle, a.DisplayName, a.AvatarURL).Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.RefAuthor.Table, schema.RefAuthor.DisplayName, schema.RefAuthor.AvatarURL, schema.RefAuthor.UpdatedAt,
		schema.RefAuthor.Handle, schema.RefAuthor.DeletedAt,
		schema.RefAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.Handle, a.DisplayName, a.AvatarURL).Scan(&a.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}

func (repository *PostgresRepository) DeleteAuthor(context context.Context, handle string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.RefAuthor.Table, schema.RefAuthor.DeletedAt, schema.RefAuthor.Handle, schema.RefAuthor.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, handle)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
