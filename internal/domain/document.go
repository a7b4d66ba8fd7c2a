package domain

import "time"

// DocStatus é o estado de processamento de um documento de fornecedor.
type DocStatus string

const (
	DocPending   DocStatus = "pending"
	DocProcessed DocStatus = "processed"
)

// IsValid informa se o status é um dos dois reconhecidos.
func (s DocStatus) IsValid() bool {
	return s == DocPending || s == DocProcessed
}

// SupplierDoc representa um documento de fornecedor (bordereau de livraison,
// fatura, etc.) recebido pela oficina.
type SupplierDoc struct {
	ID           string    `json:"id"`
	SupplierName string    `json:"supplier_name"`
	ReceivedAt   time.Time `json:"received_at"`
	Note         string    `json:"note,omitempty"`
	FileName     string    `json:"file_name,omitempty"`
	Status       DocStatus `json:"status"`
}
