package settingsrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"pneustock/internal/domain"
	"pneustock/internal/errors"
)

// SettingsRepository persiste a configuração da oficina.
// A tabela settings tem semântica de linha única (id fixo = 1).
type SettingsRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewSettingsRepository cria e retorna uma nova instância do Repositório.
func NewSettingsRepository(db *sql.DB, dbTimeout time.Duration) *SettingsRepository {
	return &SettingsRepository{DB: db, DBTimeout: dbTimeout}
}

// Get retorna a configuração persistida. Quando nenhuma linha existe ainda,
// retorna os valores padrão do domínio (não é um erro).
func (r *SettingsRepository) Get(ctx context.Context) (domain.GarageSettings, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT name, address, locations, default_threshold FROM settings WHERE id = 1`

	var s domain.GarageSettings
	err := r.DB.QueryRowContext(ctxTimeout, query).Scan(
		&s.Name,
		&s.Address,
		pq.Array(&s.Locations),
		&s.DefaultThreshold,
	)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.GarageSettings{}, errors.NewDBError("Falha ao buscar configurações", err)
	}

	return s, nil
}

// Upsert grava a configuração inteira na linha única.
func (r *SettingsRepository) Upsert(ctx context.Context, s domain.GarageSettings) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const upsertSQL = `
		INSERT INTO settings (id, name, address, locations, default_threshold)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address,
			locations = EXCLUDED.locations,
			default_threshold = EXCLUDED.default_threshold`

	_, err := r.DB.ExecContext(ctxTimeout, upsertSQL,
		s.Name,
		s.Address,
		pq.Array(s.Locations),
		s.DefaultThreshold,
	)
	if err != nil {
		return errors.NewDBError("Falha ao gravar configurações", err)
	}

	return nil
}
