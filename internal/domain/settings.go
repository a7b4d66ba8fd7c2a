package domain

// GarageSettings guarda a configuração da oficina: identificação, lista
// ordenada de códigos de localização e o limite de reposição padrão aplicado
// a novas referências.
// A unicidade dos códigos de localização NÃO é imposta pela camada de dados.
type GarageSettings struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Locations        []string `json:"locations"`
	DefaultThreshold int      `json:"default_threshold"`
}

// DefaultSettings são os valores usados enquanto nenhuma configuração foi
// persistida.
func DefaultSettings() GarageSettings {
	return GarageSettings{
		Name:             "Mon Garage",
		Address:          "",
		Locations:        []string{"A-01", "A-02", "B-01", "B-02"},
		DefaultThreshold: 4,
	}
}
