package domain

import (
	"fmt"
	"time"
)

// TireProduct representa uma referência de pneu no catálogo (a Entidade principal).
// A dimensão é o triplo largura/série/diâmetro (ex: 205/55 R16).
type TireProduct struct {
	ID          string `json:"id"`
	Width       int    `json:"width"`        // mm
	AspectRatio int    `json:"aspect_ratio"` // %
	RimDiameter int    `json:"rim_diameter"` // polegadas
	LoadIndex   string `json:"load_index"`   // ex: "91"
	SpeedIndex  string `json:"speed_index"`  // ex: "V"
	Season      Season `json:"season"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	SKUSupplier string `json:"sku_supplier,omitempty"`
	Location    string `json:"location,omitempty"`

	// ReorderThreshold é o limite abaixo do qual o estoque é sinalizado como baixo.
	ReorderThreshold int `json:"reorder_threshold"`

	// QtyOnHand nunca é negativo: todos os caminhos de mutação fazem clamp em zero.
	QtyOnHand   int  `json:"qty_on_hand"`
	QtyReserved int  `json:"qty_reserved"`
	Archived    bool `json:"archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Season é a estação de uso do pneu.
type Season string

const (
	SeasonSummer    Season = "summer"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "allseason"
)

// IsValid informa se a estação é uma das três reconhecidas.
func (s Season) IsValid() bool {
	switch s {
	case SeasonSummer, SeasonWinter, SeasonAllSeason:
		return true
	}
	return false
}

// Label retorna o rótulo de exibição (em francês, como nas etiquetas da loja).
func (s Season) Label() string {
	switch s {
	case SeasonSummer:
		return "Été"
	case SeasonWinter:
		return "Hiver"
	case SeasonAllSeason:
		return "4 Saisons"
	}
	return string(s)
}

// StockStatus é o estado de estoque derivado de uma referência.
type StockStatus string

const (
	StatusRupture StockStatus = "rupture" // sem estoque disponível
	StatusFaible  StockStatus = "faible"  // abaixo do limite de reposição
	StatusOK      StockStatus = "ok"
)

// Available é a quantidade disponível, sempre derivada (nunca persistida).
func (p TireProduct) Available() int {
	return p.QtyOnHand - p.QtyReserved
}

// StockStatus deriva o estado de estoque da referência.
// Função pura e total: toda referência mapeia para exatamente um estado.
// Usa a quantidade DISPONÍVEL (on hand - reservado), diferente das
// estatísticas agregadas, que usam a quantidade bruta.
func (p TireProduct) StockStatus() StockStatus {
	available := p.Available()
	if available <= 0 {
		return StatusRupture
	}
	if available <= p.ReorderThreshold {
		return StatusFaible
	}
	return StatusOK
}

// FormatDimension formata a dimensão no padrão de etiqueta ("205/55 R16").
func (p TireProduct) FormatDimension() string {
	return fmt.Sprintf("%d/%d R%d", p.Width, p.AspectRatio, p.RimDiameter)
}

// FormatFullSpec formata a dimensão com os índices de carga e velocidade
// ("205/55 R16 91V").
func (p TireProduct) FormatFullSpec() string {
	return fmt.Sprintf("%s %s%s", p.FormatDimension(), p.LoadIndex, p.SpeedIndex)
}

// InventoryStats agrega os números do dashboard sobre o conjunto ativo.
type InventoryStats struct {
	TotalReferences int `json:"total_references"`
	TotalStock      int `json:"total_stock"`
	OutOfStock      int `json:"out_of_stock"`
	BelowThreshold  int `json:"below_threshold"`
}

// ComputeStats calcula as estatísticas agregadas sobre as referências ATIVAS
// (não arquivadas). Atenção: OutOfStock e BelowThreshold usam QtyOnHand bruto,
// não a quantidade disponível. Os alertas do dashboard dependem exatamente
// dessa distinção em relação ao StockStatus por referência.
func ComputeStats(products []TireProduct) InventoryStats {
	var stats InventoryStats
	for _, p := range products {
		if p.Archived {
			continue
		}
		stats.TotalReferences++
		stats.TotalStock += p.QtyOnHand
		if p.QtyOnHand <= 0 {
			stats.OutOfStock++
		} else if p.QtyOnHand <= p.ReorderThreshold {
			stats.BelowThreshold++
		}
	}
	return stats
}

// ProductFilter define os parâmetros de busca da listagem de referências.
type ProductFilter struct {
	Search          string // texto livre, interpretado pelo pacote search
	Season          Season // vazio = todas
	AvailableOnly   bool   // somente disponível > 0
	LowOnly         bool   // somente qty_on_hand <= reorder_threshold
	IncludeArchived bool
}
