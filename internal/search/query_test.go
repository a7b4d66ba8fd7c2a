package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pneustock/internal/domain"
	"pneustock/internal/search"
)

// TestParse_DimensaoCompleta cobre as quatro notações usuais de dimensão.
// Todas precisam produzir o mesmo filtro completo 205/55 R16.
func TestParse_DimensaoCompleta(t *testing.T) {
	cases := []string{
		"205/55R16",
		"205/55 R16",
		"205 / 55 R 16",
		"205 55 16",
		"2055516",
		"205/55r16",
		"  205/55 R16  ",
		"205  55  16",
	}

	for _, raw := range cases {
		q := search.Parse(raw)

		assert.True(t, q.IsDimension(), raw)
		assert.False(t, q.Partial, raw)
		assert.Equal(t, 205, q.Width, raw)
		assert.Equal(t, 55, q.AspectRatio, raw)
		assert.Equal(t, 16, q.Diameter, raw)
		assert.Empty(t, q.Text, raw)
	}
}

// TestParse_DimensaoParcial: sem diâmetro, o filtro vira parcial.
func TestParse_DimensaoParcial(t *testing.T) {
	for _, raw := range []string{"205/55", "205 55", "205 / 55"} {
		q := search.Parse(raw)

		assert.True(t, q.Partial, raw)
		assert.Equal(t, 205, q.Width, raw)
		assert.Equal(t, 55, q.AspectRatio, raw)
		assert.Equal(t, 0, q.Diameter, raw)
	}
}

// TestParse_SomenteLargura: três dígitos isolados são largura, não texto.
func TestParse_SomenteLargura(t *testing.T) {
	q := search.Parse("205")

	assert.True(t, q.Partial)
	assert.Equal(t, 205, q.Width)
	assert.Equal(t, 0, q.AspectRatio)
	assert.Equal(t, 0, q.Diameter)
}

// TestParse_Texto: qualquer outra coisa vira filtro textual normalizado.
func TestParse_Texto(t *testing.T) {
	q := search.Parse("  Michelin   Primacy ")

	assert.False(t, q.IsDimension())
	assert.Equal(t, "michelin primacy", q.Text)
}

// TestParse_PrimeiraRegraVence: a cascata é first-match-wins, nunca
// best-match. "205/55 R16 hiver" ainda casa a regra 1 (não ancorada).
func TestParse_PrimeiraRegraVence(t *testing.T) {
	q := search.Parse("205/55 R16 hiver")

	assert.True(t, q.IsDimension())
	assert.False(t, q.Partial)
	assert.Equal(t, 16, q.Diameter)
}

// TestMatches_Dimensao verifica o casamento exato campo a campo.
func TestMatches_Dimensao(t *testing.T) {
	p := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 16, Brand: "Michelin", Model: "Primacy 4"}

	assert.True(t, search.Parse("205/55R16").Matches(p))
	assert.False(t, search.Parse("205/55R17").Matches(p))
	assert.False(t, search.Parse("225/55R16").Matches(p))
}

// TestMatches_DimensaoParcial: campos ausentes não restringem, então um
// filtro parcial casa com qualquer diâmetro.
func TestMatches_DimensaoParcial(t *testing.T) {
	q := search.Parse("205 55")

	r16 := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 16}
	r17 := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 17}
	outro := domain.TireProduct{Width: 195, AspectRatio: 55, RimDiameter: 16}

	assert.True(t, q.Matches(r16))
	assert.True(t, q.Matches(r17))
	assert.False(t, q.Matches(outro))
}

// TestMatches_Texto verifica o casamento por substring em marca, modelo e
// dimensão formatada.
func TestMatches_Texto(t *testing.T) {
	michelin := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 16, Brand: "Michelin", Model: "Primacy 4"}
	continental := domain.TireProduct{Width: 225, AspectRatio: 45, RimDiameter: 17, Brand: "Continental", Model: "PremiumContact 6"}

	q := search.Parse("michelin")
	assert.True(t, q.Matches(michelin))
	assert.False(t, q.Matches(continental))

	// Modelo também conta.
	assert.True(t, search.Parse("primacy").Matches(michelin))

	// E a dimensão formatada ("205/55 r16" contém "r16").
	assert.True(t, search.Parse("r16").Matches(michelin))
	assert.False(t, search.Parse("r16").Matches(continental))
}

// TestMatches_ConsultaVazia: busca vazia não filtra nada.
func TestMatches_ConsultaVazia(t *testing.T) {
	p := domain.TireProduct{Width: 205, AspectRatio: 55, RimDiameter: 16}

	assert.True(t, search.Parse("").Matches(p))
	assert.True(t, search.Parse("   ").Matches(p))
}
