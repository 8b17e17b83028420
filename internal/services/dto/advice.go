package dto

type AdviceRequest struct {
	Income float64 `json:"income" validate:"gt=0"`
}

type AdviceResponse struct {
	Recommendation string   `json:"recommendation"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Sources        []string `json:"sources,omitempty"`
}
