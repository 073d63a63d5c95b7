package authority

import (
	"encoding/json"
	"fmt"
	"strings"
)

const UnknownDetail = "Unknown error"

// APIError is a non-2xx answer from the authority.
type APIError struct {
	Op     string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d, detail: %s", e.Status, e.Detail)
}

// parseDetail extracts the detail field of an error body. Validation errors
// carry a list instead of a string; that is kept as raw JSON.
func parseDetail(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return UnknownDetail
	}
	var s string
	if err := json.Unmarshal(resp.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return UnknownDetail
		}
		return s
	}
	if string(resp.Detail) == "null" {
		return UnknownDetail
	}
	return string(resp.Detail)
}
