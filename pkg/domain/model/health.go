package model

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
