// Package surreal implements store.Store on SurrealDB.
//
// All SurrealQL goes through $param binding; user-provided values are never
// interpolated into query text. Record ids are UUID strings inside
// models.RecordID, so ownership filters compare whole record ids.
package surreal

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

type Store struct {
	db  *surrealdb.DB
	log zerolog.Logger
}

// Connect dials the SurrealDB endpoint, signs in when credentials are
// given and selects the namespace/database pair.
func Connect(ctx context.Context, url, namespace, database, user, pass string, log zerolog.Logger) (*Store, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to surrealdb: %w", err)
	}

	if user != "" {
		if _, err := db.SignIn(ctx, map[string]any{"user": user, "pass": pass}); err != nil {
			return nil, fmt.Errorf("sign in to surrealdb: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("use %s/%s: %w", namespace, database, err)
	}

	return &Store{db: db, log: log}, nil
}

// EnsureSchema defines the unique indexes the handlers rely on. SurrealDB
// creates tables lazily, so indexes are the only schema to set up.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
		DEFINE INDEX IF NOT EXISTS userUsernameIdx ON TABLE user COLUMNS username UNIQUE;
		DEFINE INDEX IF NOT EXISTS folderUserNameIdx ON TABLE folder COLUMNS user, name UNIQUE;
		DEFINE INDEX IF NOT EXISTS tagUserNameIdx ON TABLE tag COLUMNS user, name UNIQUE;
	`
	if _, err := surrealdb.Query[any](ctx, s.db, schema, nil); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close(context.Background())
}

// queryRows runs sql and returns the rows of the first statement result.
func queryRows[T any](ctx context.Context, s *Store, sql string, vars map[string]any) ([]T, error) {
	res, err := surrealdb.Query[[]T](ctx, s.db, sql, vars)
	if err != nil {
		s.log.Error().Err(err).Str("query", strings.TrimSpace(sql)).Msg("query failed")
		return nil, err
	}
	if res == nil || len(*res) == 0 {
		return nil, nil
	}
	return (*res)[0].Result, nil
}

type countRow struct {
	Count int `json:"count"`
}

func (s *Store) count(ctx context.Context, sql string, vars map[string]any) (int, error) {
	rows, err := queryRows[countRow](ctx, s, sql, vars)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

// isDuplicate reports whether err is a unique index violation. The driver
// surfaces these as plain errors, so the message is all there is to go on.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already contains")
}
