package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gideon/notes/internal/database"
	apperrors "github.com/gideon/notes/internal/errors"
	userDomain "github.com/gideon/notes/internal/user/domain"
)

// MySQLUserRepository implements user persistence for MySQL databases.
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user and populates its generated ID and timestamps.
func (m *MySQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	now := time.Now().UTC()

	query := `INSERT INTO users (username, email, password, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
		now,
		now,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get created user id")
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByEmail retrieves a user by email.
func (m *MySQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, email, password, role, created_at, updated_at
			  FROM users
			  WHERE email = ?`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by its numeric ID.
func (m *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*userDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, email, password, role, created_at, updated_at
			  FROM users
			  WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, id))
}

// ExistsByUsername reports whether a user with the given username exists.
func (m *MySQLUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`
	if err := querier.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check username existence")
	}
	return exists, nil
}

// ExistsByEmail reports whether a user with the given email exists.
func (m *MySQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`
	if err := querier.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check email existence")
	}
	return exists, nil
}

// NewMySQLUserRepository creates a new MySQL user repository instance.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
