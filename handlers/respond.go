package handlers

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, apiResponse{Success: true, Message: msg, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Message: msg})
}

// respondFailure hides driver detail behind a generic message; the underlying
// error only reaches the envelope's error field.
func respondFailure(w http.ResponseWriter, msg string, err error) {
	resp := apiResponse{Success: false, Message: msg}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func respondValidation(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, apiResponse{
		Success: false,
		Message: "Validasi gagal",
		Errors:  errs,
	})
}

// requestError carries a client-facing failure out of a transaction.
type requestError struct {
	status  int
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

func errValidation(fields map[string]string) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, message: "Validasi gagal", fields: fields}
}

func errFieldTaken(field, msg string) *requestError {
	return errValidation(map[string]string{field: msg})
}

func errConflict(msg string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: msg}
}

func errUnprocessable(msg string) *requestError {
	return &requestError{status: http.StatusUnprocessableEntity, message: msg}
}

func respondRequestError(w http.ResponseWriter, e *requestError) {
	writeJSON(w, e.status, apiResponse{Success: false, Message: e.message, Errors: e.fields})
}
