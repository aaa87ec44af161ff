package wire

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type Ack struct {
	OK bool `json:"ok"`
}
