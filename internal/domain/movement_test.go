package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pneustock/internal/domain"
)

// TestNormalizeQuantity verifica a convenção de sinal do livro de estoque.
func TestNormalizeQuantity(t *testing.T) {
	// IN sempre positivo, mesmo se o chamador mandar negativo.
	assert.Equal(t, 5, domain.NormalizeQuantity(domain.MovementIn, 5))
	assert.Equal(t, 5, domain.NormalizeQuantity(domain.MovementIn, -5))

	// OUT sempre negativo.
	assert.Equal(t, -10, domain.NormalizeQuantity(domain.MovementOut, 10))
	assert.Equal(t, -10, domain.NormalizeQuantity(domain.MovementOut, -10))

	// ADJUST passa o delta como veio.
	assert.Equal(t, -2, domain.NormalizeQuantity(domain.MovementAdjust, -2))
	assert.Equal(t, 7, domain.NormalizeQuantity(domain.MovementAdjust, 7))
}

// TestApplyMovement verifica a aplicação com clamp em zero.
func TestApplyMovement(t *testing.T) {
	assert.Equal(t, 8, domain.ApplyMovement(3, 5))
	assert.Equal(t, 3, domain.ApplyMovement(5, -2))

	// Saída maior que o estoque: o saldo trava em zero, não fica negativo.
	assert.Equal(t, 0, domain.ApplyMovement(3, -10))
	assert.Equal(t, 0, domain.ApplyMovement(0, 0))
}

// TestMovementReason_IsValid verifica o conjunto fixo de motivos.
func TestMovementReason_IsValid(t *testing.T) {
	valid := []domain.MovementReason{
		domain.ReasonVente, domain.ReasonMontage, domain.ReasonCorrection,
		domain.ReasonRetour, domain.ReasonReception, domain.ReasonAutre,
	}
	for _, r := range valid {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, domain.MovementReason("Inventaire").IsValid())
}

// TestMovementTypeLabel verifica os rótulos de exibição dos tipos.
func TestMovementTypeLabel(t *testing.T) {
	assert.Equal(t, "Entrée", domain.MovementIn.Label())
	assert.Equal(t, "Sortie", domain.MovementOut.Label())
	assert.Equal(t, "Ajustement", domain.MovementAdjust.Label())
}
