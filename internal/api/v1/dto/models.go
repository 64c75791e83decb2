package dto

// ModelResponse reports one Whisper model and its cache state.
type ModelResponse struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// ModelListResponse wraps the model catalog.
type ModelListResponse struct {
	Models []ModelResponse `json:"models"`
}
