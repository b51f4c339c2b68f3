package response

// StandardApiResponse is the wire shape for every API reply. Status echoes
// the outcome ("success"/"error") so clients do not have to branch on the
// HTTP code alone; Errors carries validation detail on 4xx responses.
type StandardApiResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}
