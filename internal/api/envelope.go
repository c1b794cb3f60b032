package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire version of the response envelope. Clients use
// it to detect incompatible server upgrades.
const envelopeVersion = 1

// successEnvelope wraps successful response bodies.
type successEnvelope struct {
	V       int  `json:"v" doc:"Envelope version"`
	Success bool `json:"success" doc:"Always true for success responses"`
	Data    any  `json:"data,omitempty" doc:"Response payload"`
}

// errorEnvelope wraps error response bodies. Simple errors carry only the
// error string; detailed errors add a machine-readable code plus details.
type errorEnvelope struct {
	V       int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Always false for error responses"`
	Error   string `json:"error" doc:"Human-readable error string"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Message string `json:"message,omitempty" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope.
// The version field MUST stay named "v"; clients parse it by that exact key.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		env := &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}
		if apiErr.Code != "" {
			env.Code = apiErr.Code
			env.Message = apiErr.Message
			env.Details = apiErr.Details
		}
		return env, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
