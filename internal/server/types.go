package server

// EvalResponse is the JSON body of a successful /v1/eval request.
type EvalResponse struct {
	// Expression is the canonical infix form of the evaluated expression.
	Expression string `json:"expression"`
	// Engine is the engine that computed the result.
	Engine string `json:"engine"`
	// Result is the decimal value.
	Result string `json:"result"`
	// Bits is the bit length of the absolute value.
	Bits int `json:"bits"`
	// Words is the number of 64-bit words in two's-complement form.
	Words int `json:"words"`
	// Duration is the evaluation wall time.
	Duration string `json:"duration"`
}

// EngineResult is one row of a /v1/compare response.
type EngineResult struct {
	Engine   string `json:"engine"`
	Result   string `json:"result,omitempty"`
	Bits     int    `json:"bits"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// CompareResponse is the JSON body of a /v1/compare request.
type CompareResponse struct {
	Expression string `json:"expression"`
	// Consistent is true when every successful engine produced the same value.
	Consistent bool           `json:"consistent"`
	Results    []EngineResult `json:"results"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// RequestError is a request parameter error with its HTTP status.
type RequestError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e RequestError) Error() string {
	return e.Message
}
