package dto

// ErrorResponse envelope uniforme de error HTTP. Todo error lleva traceId
// para correlacionar con los logs del servidor.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	TraceID    string `json:"traceId"`
}
