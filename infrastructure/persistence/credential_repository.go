package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

type CredentialRepository struct{ db *sql.DB }

func NewCredentialRepository(db *sql.DB) *CredentialRepository { return &CredentialRepository{db: db} }

func (r *CredentialRepository) Upsert(ctx context.Context, c *model.Credential) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.CredentialStatusActive
	}
	q := `INSERT INTO credentials (owner_id, provider, credential_type, value, status, expires_at, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		  ON CONFLICT (owner_id, provider, credential_type) DO UPDATE SET
			value=EXCLUDED.value,
			status=EXCLUDED.status,
			expires_at=EXCLUDED.expires_at,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, c.OwnerID, c.Provider, c.CredentialType, c.Value, c.Status, c.ExpiresAt, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CredentialRepository) Get(ctx context.Context, ownerID, provider, credentialType string) (*model.Credential, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, owner_id, provider, credential_type, value, status, expires_at, created_at, updated_at FROM credentials WHERE owner_id=$1 AND provider=$2 AND credential_type=$3 AND status='active'`, ownerID, provider, credentialType)
	cred := &model.Credential{}
	var exp sql.NullTime
	if err := row.Scan(&cred.ID, &cred.OwnerID, &cred.Provider, &cred.CredentialType, &cred.Value, &cred.Status, &exp, &cred.CreatedAt, &cred.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if exp.Valid {
		cred.ExpiresAt = &exp.Time
	}
	return cred, nil
}

func (r *CredentialRepository) DeleteAll(ctx context.Context, ownerID, provider string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE owner_id=$1 AND provider=$2`, ownerID, provider)
	return err
}
