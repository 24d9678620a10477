package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

type OAuthStateRepository struct{ db *sql.DB }

func NewOAuthStateRepository(db *sql.DB) *OAuthStateRepository {
	return &OAuthStateRepository{db: db}
}

func (r *OAuthStateRepository) Create(ctx context.Context, s *model.OAuthState) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO oauth_states (owner_id, provider, nonce, expires_at, created_at) VALUES ($1,$2,$3,$4,$5)`,
		s.OwnerID, s.Provider, s.Nonce, s.ExpiresAt, s.CreatedAt)
	return err
}

// Consume deletes the matching row and returns it in one statement, so the
// nonce cannot be replayed by a concurrent duplicate callback.
func (r *OAuthStateRepository) Consume(ctx context.Context, ownerID, provider, nonce string) (*model.OAuthState, error) {
	row := r.db.QueryRowContext(ctx,
		`DELETE FROM oauth_states WHERE owner_id=$1 AND provider=$2 AND nonce=$3 RETURNING id, owner_id, provider, nonce, expires_at, created_at`,
		ownerID, provider, nonce)
	s := &model.OAuthState{}
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Provider, &s.Nonce, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *OAuthStateRepository) DeletePending(ctx context.Context, ownerID, provider string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM oauth_states WHERE owner_id=$1 AND provider=$2`, ownerID, provider)
	return err
}
