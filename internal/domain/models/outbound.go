package models

// CalculateRequest is the HTTP body for calculation and export requests.
type CalculateRequest struct {
	Formula string   `json:"formula"`
	Volume  string   `json:"volume" binding:"required"`
	Solids  []string `json:"solids"`
	Lang    string   `json:"lang"`
	Target  string   `json:"target"`
}

// ResultRow is one rendered worksheet line.
type ResultRow struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Volume string `json:"volume_ml"`
	Mass   string `json:"mass_g"`
}

// CalculateResponse is returned by the calculation endpoint.
type CalculateResponse struct {
	RequestID       string            `json:"request_id"`
	TotalVolumeML   float64           `json:"total_volume_ml"`
	TotalNonWaterML float64           `json:"total_non_water_ml"`
	Components      []ComponentResult `json:"components"`
	Rows            []ResultRow       `json:"rows"`
}

// ErrorResponse carries a stable error code and a localized message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
