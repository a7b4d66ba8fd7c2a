package domain

import "time"

// MovementType classifica um movimento de estoque.
type MovementType string

const (
	MovementIn     MovementType = "IN"     // recebimento
	MovementOut    MovementType = "OUT"    // venda / montagem
	MovementAdjust MovementType = "ADJUST" // correção com delta assinado
)

// IsValid informa se o tipo é um dos três reconhecidos.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjust:
		return true
	}
	return false
}

// Label retorna o rótulo de exibição do tipo de movimento.
func (t MovementType) Label() string {
	switch t {
	case MovementIn:
		return "Entrée"
	case MovementOut:
		return "Sortie"
	case MovementAdjust:
		return "Ajustement"
	}
	return string(t)
}

// MovementReason é o motivo de um movimento, dentro do conjunto fixo usado
// pela oficina.
type MovementReason string

const (
	ReasonVente      MovementReason = "Vente"
	ReasonMontage    MovementReason = "Montage"
	ReasonCorrection MovementReason = "Correction"
	ReasonRetour     MovementReason = "Retour"
	ReasonReception  MovementReason = "Réception"
	ReasonAutre      MovementReason = "Autre"
)

// IsValid informa se o motivo pertence ao conjunto enumerado.
func (r MovementReason) IsValid() bool {
	switch r {
	case ReasonVente, ReasonMontage, ReasonCorrection, ReasonRetour, ReasonReception, ReasonAutre:
		return true
	}
	return false
}

// StockMovement é um lançamento imutável do livro de estoque.
// A quantidade é armazenada normalizada: OUT sempre negativa, IN sempre
// positiva, ADJUST mantém o sinal informado (delta líquido).
type StockMovement struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Type      MovementType   `json:"type"`
	ProductID string         `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Reason    MovementReason `json:"reason"`
	Note      string         `json:"note,omitempty"`
	UserName  string         `json:"user_name"`
	DocRef    string         `json:"doc_ref,omitempty"`
}

// MovementEntry é um movimento enriquecido para exibição, com o rótulo da
// referência associada. Quando a referência não existe mais, o rótulo recebe
// o placeholder DeletedProductLabel em vez de falhar.
type MovementEntry struct {
	StockMovement
	ProductLabel string `json:"product_label"`
}

// DeletedProductLabel é o placeholder exibido quando o produto de um
// movimento não resolve mais (referência apagada ou arquivada).
const DeletedProductLabel = "Produit supprimé"

// NormalizeQuantity aplica a convenção de sinal do livro:
// IN vira +|quantity|, OUT vira -|quantity| e ADJUST passa o delta como veio.
func NormalizeQuantity(t MovementType, quantity int) int {
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch t {
	case MovementIn:
		return abs
	case MovementOut:
		return -abs
	default:
		return quantity
	}
}

// ApplyMovement aplica uma quantidade normalizada ao estoque atual.
// O resultado nunca é negativo: uma saída maior que o estoque é tolerada e
// o saldo é travado em zero, não rejeitado.
func ApplyMovement(qtyOnHand, normalizedQty int) int {
	newQty := qtyOnHand + normalizedQty
	if newQty < 0 {
		return 0
	}
	return newQty
}
