// Package search interpreta o texto livre da barra de busca e o converte em
// um filtro estruturado: ou um filtro de dimensão de pneu (largura/série/
// diâmetro, cada campo opcional) ou um filtro de texto por substring.
//
// Os usuários digitam a dimensão em pelo menos quatro notações diferentes
// ("205/55 R16", "205 / 55 R 16", "205 55 16", "2055516") e o interpretador
// precisa distingui-las de uma busca textual por marca/modelo sem nenhum
// seletor de modo explícito. Enquanto o usuário ainda está digitando
// ("205 55" sem diâmetro), a busca degrada para um filtro parcial.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"pneustock/internal/domain"
)

// Query é o resultado da interpretação de uma busca. Exatamente um dos dois
// modos está ativo: dimensão (algum campo de Width/AspectRatio/Diameter
// preenchido) ou texto (Text não vazio). Zero significa campo ausente, já que
// nenhuma dimensão real de pneu é zero.
type Query struct {
	Width       int
	AspectRatio int
	Diameter    int

	// Partial indica que o diâmetro não foi capturado; o casamento não deve
	// exigir diâmetro exato.
	Partial bool

	// Text é a busca textual normalizada (minúsculas, espaços colapsados),
	// usada quando nenhum padrão de dimensão casou.
	Text string
}

// IsDimension informa se a consulta é um filtro de dimensão.
func (q Query) IsDimension() bool {
	return q.Width != 0 || q.AspectRatio != 0 || q.Diameter != 0
}

// As regras são avaliadas em ordem e a PRIMEIRA que casar vence. A ordem
// importa porque os padrões se sobrepõem (ex: "205 55 16" também casaria a
// regra parcial de largura se ela viesse antes).
var (
	// "205/55 R16", "205/55R16", "205 / 55 R 16" (separadores tolerantes)
	reFullSeparated = regexp.MustCompile(`(\d{3})\s*/?\s*(\d{2})\s*r?\s*(\d{2})`)

	// "205 55 16" (três grupos separados por espaços, string inteira)
	reFullSpaced = regexp.MustCompile(`^(\d{3})\s+(\d{2})\s+(\d{2})$`)

	// "2055516" (sete dígitos colados, divididos 3-2-2)
	reFullCompact = regexp.MustCompile(`^(\d{3})(\d{2})(\d{2})$`)

	// "205/55" ou "205 55" (sem diâmetro ainda)
	rePartialPair = regexp.MustCompile(`^(\d{3})\s*/?\s*(\d{2})$`)

	// "205" (somente largura)
	rePartialWidth = regexp.MustCompile(`^(\d{3})$`)
)

// Parse normaliza a string bruta e aplica a cascata de regras.
func Parse(raw string) Query {
	cleaned := Normalize(raw)

	if m := reFullSeparated.FindStringSubmatch(cleaned); m != nil {
		return Query{Width: atoi(m[1]), AspectRatio: atoi(m[2]), Diameter: atoi(m[3])}
	}
	if m := reFullSpaced.FindStringSubmatch(cleaned); m != nil {
		return Query{Width: atoi(m[1]), AspectRatio: atoi(m[2]), Diameter: atoi(m[3])}
	}
	if m := reFullCompact.FindStringSubmatch(cleaned); m != nil {
		return Query{Width: atoi(m[1]), AspectRatio: atoi(m[2]), Diameter: atoi(m[3])}
	}
	if m := rePartialPair.FindStringSubmatch(cleaned); m != nil {
		return Query{Width: atoi(m[1]), AspectRatio: atoi(m[2]), Partial: true}
	}
	if m := rePartialWidth.FindStringSubmatch(cleaned); m != nil {
		return Query{Width: atoi(m[1]), Partial: true}
	}

	return Query{Text: cleaned}
}

// Normalize prepara a string para o casamento de padrões: trim, minúsculas e
// colapso de sequências internas de espaço em um único espaço.
func Normalize(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Matches informa se uma referência satisfaz a consulta.
//
// Filtro de dimensão: todo campo PRESENTE precisa ser igual ao campo
// correspondente da referência; campos ausentes não impõem restrição.
// Filtro de texto: substring da marca, do modelo ou da dimensão formatada,
// tudo em minúsculas. Uma consulta vazia casa com qualquer referência.
func (q Query) Matches(p domain.TireProduct) bool {
	if q.IsDimension() {
		if q.Width != 0 && p.Width != q.Width {
			return false
		}
		if q.AspectRatio != 0 && p.AspectRatio != q.AspectRatio {
			return false
		}
		if q.Diameter != 0 && p.RimDiameter != q.Diameter {
			return false
		}
		return true
	}

	if q.Text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Brand), q.Text) ||
		strings.Contains(strings.ToLower(p.Model), q.Text) ||
		strings.Contains(strings.ToLower(p.FormatDimension()), q.Text)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // os grupos capturados são sempre dígitos
	return n
}
