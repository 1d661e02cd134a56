package apikey

import (
	"encoding/json"
	"io"
	"net/http"
)

// Status is the tri-state outcome of a credential probe. It is deliberately
// not a bool: "the provider rejected the key" and "the probe itself failed"
// need different user guidance.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// Probe executes a prepared, already-authenticated probe request and
// classifies the outcome. A 200 with a parseable JSON body is Valid, a 401
// is Invalid, and everything else (other statuses, transport failures,
// garbage bodies) is Error. Single attempt, no retry.
func Probe(client *http.Client, req *http.Request) Status {
	resp, err := client.Do(req)
	if err != nil {
		return StatusError
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil || !json.Valid(body) {
			return StatusError
		}
		return StatusValid
	case http.StatusUnauthorized:
		return StatusInvalid
	default:
		return StatusError
	}
}
