package types

// HealthResponse reports service liveness and the loaded model.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ModelsResponse lists the models this service can embed with. The service
// loads exactly one model, so the list always has one element.
type ModelsResponse struct {
	Models []string `json:"models"`
}
