package postgres

import (
	"context"
	"time"

	"github.com/keelhaven/clientreg/internal/registry/domain"
)

type credentialsRepo struct {
	db dbtx
}

func (r *credentialsRepo) AddCredential(ctx context.Context, cred domain.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO client_credentials (id, client_id, secret_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		cred.ID,
		cred.ClientID,
		cred.SecretHash,
		time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *credentialsRepo) ListCredentials(ctx context.Context, clientID string) ([]domain.Credential, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, secret_hash, created_at
		 FROM client_credentials
		 WHERE client_id = $1
		 ORDER BY created_at, id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		var cred domain.Credential
		if err := rows.Scan(&cred.ID, &cred.ClientID, &cred.SecretHash, &cred.CreatedAt); err != nil {
			return nil, err
		}
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}
