// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to tell a missing
// record apart from a failed statement.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when a venue id does not match a row.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id does not match a row.
var ErrArtistNotFound = errors.New("artist not found")

// withTx runs fn inside a transaction.  The transaction is committed when
// fn returns nil and rolled back otherwise; the connection goes back to
// the pool in both cases.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

// likePattern builds a case-insensitive substring pattern for LIKE.
// Wildcards typed by the user are escaped so they match literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// nullString maps an optional description to its column value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringPtr maps a nullable column back to an optional description.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
