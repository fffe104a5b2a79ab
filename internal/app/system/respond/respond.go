// Package respond writes the JSON envelope every endpoint uses.
//
// Success bodies carry {"success": true, "data": ...}; list bodies add
// "count" and a "pagination" block. Failure bodies carry
// {"success": false, "message": ...}.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/system/paging"
)

type dataEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type listEnvelope struct {
	Success    bool              `json:"success"`
	Count      int               `json:"count"`
	Pagination paging.Pagination `json:"pagination"`
	Data       interface{}       `json:"data"`
}

type messageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding our own envelope types cannot fail in a way we can
	// report; the status line is already out.
	_ = json.NewEncoder(w).Encode(body)
}

// Data writes a success envelope wrapping data.
func Data(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, dataEnvelope{Success: true, Data: data})
}

// List writes a success envelope with count and pagination. count is the
// number of items in this page, not the total.
func List(w http.ResponseWriter, status int, data interface{}, count int, pg paging.Pagination) {
	write(w, status, listEnvelope{Success: true, Count: count, Pagination: pg, Data: data})
}

// Message writes a success envelope carrying only a message.
func Message(w http.ResponseWriter, status int, msg string) {
	write(w, status, messageEnvelope{Success: true, Message: msg})
}

// Error writes a failure envelope with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	write(w, status, messageEnvelope{Success: false, Message: msg})
}
