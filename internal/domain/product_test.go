package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pneustock/internal/domain"
)

// TestStockStatus_Rupture verifica que reservas consomem a disponibilidade.
func TestStockStatus_Rupture(t *testing.T) {
	p := domain.TireProduct{QtyOnHand: 2, QtyReserved: 2, ReorderThreshold: 4}

	assert.Equal(t, 0, p.Available())
	assert.Equal(t, domain.StatusRupture, p.StockStatus())
}

// TestStockStatus_Faible verifica o estado de estoque baixo.
func TestStockStatus_Faible(t *testing.T) {
	p := domain.TireProduct{QtyOnHand: 3, QtyReserved: 0, ReorderThreshold: 4}

	assert.Equal(t, domain.StatusFaible, p.StockStatus())
}

// TestStockStatus_OK verifica o estado normal.
func TestStockStatus_OK(t *testing.T) {
	p := domain.TireProduct{QtyOnHand: 5, QtyReserved: 0, ReorderThreshold: 4}

	assert.Equal(t, domain.StatusOK, p.StockStatus())
}

// TestStockStatus_LimiteExato: disponível igual ao limite ainda é "faible".
func TestStockStatus_LimiteExato(t *testing.T) {
	p := domain.TireProduct{QtyOnHand: 4, QtyReserved: 0, ReorderThreshold: 4}

	assert.Equal(t, domain.StatusFaible, p.StockStatus())
}

// TestComputeStats verifica as agregações do dashboard sobre o conjunto ativo.
func TestComputeStats(t *testing.T) {
	products := []domain.TireProduct{
		{QtyOnHand: 0, ReorderThreshold: 4},
		{QtyOnHand: 3, ReorderThreshold: 4},
		{QtyOnHand: 10, ReorderThreshold: 4},
	}

	stats := domain.ComputeStats(products)

	assert.Equal(t, 3, stats.TotalReferences)
	assert.Equal(t, 13, stats.TotalStock)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 1, stats.BelowThreshold)
}

// TestComputeStats_IgnoraArquivados: referências arquivadas ficam de fora de
// todas as contagens.
func TestComputeStats_IgnoraArquivados(t *testing.T) {
	products := []domain.TireProduct{
		{QtyOnHand: 5, ReorderThreshold: 4},
		{QtyOnHand: 2, ReorderThreshold: 4, Archived: true},
	}

	stats := domain.ComputeStats(products)

	assert.Equal(t, 1, stats.TotalReferences)
	assert.Equal(t, 5, stats.TotalStock)
	assert.Equal(t, 0, stats.BelowThreshold)
}

// TestComputeStats_UsaQuantidadeBruta: as estatísticas usam QtyOnHand bruto,
// não a disponibilidade. Uma referência com todo o estoque reservado ainda
// conta como "ok" nas agregações.
func TestComputeStats_UsaQuantidadeBruta(t *testing.T) {
	products := []domain.TireProduct{
		{QtyOnHand: 10, QtyReserved: 10, ReorderThreshold: 4},
	}

	stats := domain.ComputeStats(products)

	// Por referência o status seria "rupture", mas a agregação não vê reservas.
	assert.Equal(t, 0, stats.OutOfStock)
	assert.Equal(t, 0, stats.BelowThreshold)
	assert.Equal(t, domain.StatusRupture, products[0].StockStatus())
}

// TestFormatDimension verifica os formatos de etiqueta.
func TestFormatDimension(t *testing.T) {
	p := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 16, LoadIndex: "91", SpeedIndex: "V"}

	assert.Equal(t, "205/55 R16", p.FormatDimension())
	assert.Equal(t, "205/55 R16 91V", p.FormatFullSpec())
}

// TestSeasonLabels verifica os rótulos de exibição.
func TestSeasonLabels(t *testing.T) {
	assert.Equal(t, "Été", domain.SeasonSummer.Label())
	assert.Equal(t, "Hiver", domain.SeasonWinter.Label())
	assert.Equal(t, "4 Saisons", domain.SeasonAllSeason.Label())
	assert.True(t, domain.SeasonAllSeason.IsValid())
	assert.False(t, domain.Season("spring").IsValid())
}
