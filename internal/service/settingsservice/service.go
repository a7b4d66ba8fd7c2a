package settingsservice

import (
	"context"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// SettingsRepository define o contrato de persistência da configuração.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.GarageSettings, error)
	Upsert(ctx context.Context, settings domain.GarageSettings) error
}

// Service implementa a lógica da configuração da oficina.
type Service struct {
	repo   SettingsRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Configuração.
func NewService(repo SettingsRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Get retorna a configuração atual (ou os padrões, se nada foi gravado).
func (s *Service) Get(ctx context.Context) (domain.GarageSettings, error) {
	return s.repo.Get(ctx)
}

// Update grava a configuração inteira.
func (s *Service) Update(ctx context.Context, settings domain.GarageSettings) error {
	if settings.Name == "" {
		return apperror.NewValidationError("O nome da oficina é obrigatório.")
	}
	if settings.DefaultThreshold < 0 {
		return apperror.NewValidationError("O limite de reposição padrão não pode ser negativo.")
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		s.logger.Error("Falha ao gravar configurações.", err)
		return err
	}

	return nil
}

// AddLocation anexa um código de localização ao fim da lista ordenada.
// A unicidade não é imposta aqui (é responsabilidade da interface).
func (s *Service) AddLocation(ctx context.Context, location string) error {
	if location == "" {
		return apperror.NewValidationError("O código de localização é obrigatório.")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}

	settings.Locations = append(settings.Locations, location)
	return s.repo.Upsert(ctx, settings)
}

// RemoveLocation remove todas as ocorrências do código informado.
func (s *Service) RemoveLocation(ctx context.Context, location string) error {
	if location == "" {
		return apperror.NewValidationError("O código de localização é obrigatório.")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}

	kept := []string{}
	for _, l := range settings.Locations {
		if l != location {
			kept = append(kept, l)
		}
	}
	settings.Locations = kept

	return s.repo.Upsert(ctx, settings)
}
