// Package api holds the JSON bodies shared by the HTTP routers.
package api

import (
	"net/http"

	"reglookup/domain/lookup"
)

// FoundResponse is returned with 200 when a record matches
type FoundResponse struct {
	Found bool          `json:"found"`
	Data  lookup.Record `json:"data"`
}

// NotFoundResponse is returned with 404 when no record matches
type NotFoundResponse struct {
	Found bool `json:"found"`
}

// ErrorResponse is returned with 500 when the table could not be fetched
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// InternalServerError is the fixed error label of ErrorResponse
const InternalServerError = "Internal Server Error"

// LookupResponse maps a lookup outcome to a status code and JSON body
func LookupResponse(result lookup.Result, err error) (int, interface{}) {
	if err != nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error:  InternalServerError,
			Detail: err.Error(),
		}
	}
	if !result.Found {
		return http.StatusNotFound, NotFoundResponse{Found: false}
	}
	return http.StatusOK, FoundResponse{Found: true, Data: result.Record}
}
