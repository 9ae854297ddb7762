package surreal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	rec := userRecord{
		Username: u.Username,
		Password: u.Password,
		Fullname: u.Fullname,
	}

	created, err := surrealdb.Create[userRecord](ctx, s.db, userRID(u.ID), rec)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.Conflict("The username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created.toDomain(), nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	rows, err := queryRows[userRecord](ctx, s,
		"SELECT * FROM user WHERE username = $username",
		map[string]any{"username": username})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.NotFound("User not found")
	}
	return rows[0].toDomain(), nil
}
