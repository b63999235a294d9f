package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ymatsuda/auth-service/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique constraint rejections.
const pgUniqueViolation = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.HashedPassword,
		&ur.CreatedAt,
		&ur.IsActive,
	)
	return ur, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// ---------- registration.UserRepository ----------

// Save persists the user and returns it rebuilt from the committed row.
// A single INSERT runs in its own transaction, so a constraint rejection
// leaves no partial state visible to subsequent reads.
func (r *UserRepo) Save(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.HashedPassword == "" {
		return domain.User{}, domain.ErrMissingField("hashed_password")
	}

	const q = `
INSERT INTO users (id, email, hashed_password, created_at, is_active)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, email, hashed_password, created_at, is_active;
`

	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.HashedPassword, u.CreatedAt, u.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrIntegrityViolation(err)
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// FindByID returns (nil, nil) when no record matches. An empty id can
// never have been saved, so it is a plain miss.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	const q = `
SELECT id, email, hashed_password, created_at, is_active
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	u := toDomainUser(ur)
	return &u, nil
}

// FindByEmail returns (nil, nil) when no record matches. Emails are treated
// as opaque keys: stored verbatim, matched exactly.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, nil
	}

	const q = `
SELECT id, email, hashed_password, created_at, is_active
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.ErrDBUnavailable(err)
	}
	u := toDomainUser(ur)
	return &u, nil
}
