package handlers

// ForecastRequest is the query string of GET /forecast. Validation
// happens in the lookup so the CLI and HTTP share the same rules.
type ForecastRequest struct {
	Name       string `form:"name"`
	PostalCode string `form:"plz"`
	Country    string `form:"country"`
	Days       int    `form:"days,default=1"`
	Lang       string `form:"lang,default=en"`
}

// ErrorResponse carries the apperr kind as Code; Countries is filled
// for postal codes that exist in several countries.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code,omitempty"`
	Details   string   `json:"details,omitempty"`
	Hint      string   `json:"hint,omitempty"`
	Countries []string `json:"countries,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
