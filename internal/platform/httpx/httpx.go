package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cyber-kittens/internal/platform/apperr"
	"cyber-kittens/internal/platform/logger"
)

// MaxBodyBytes limita el tamaño de los cuerpos JSON aceptados.
const MaxBodyBytes = 1 << 20

// ErrorResponse es el cuerpo de cualquier respuesta de error.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Name    string            `json:"name"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError traduce err a status + ErrorResponse. Los 5xx se loguean como error
// y su mensaje interno no se expone al cliente.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	kind := apperr.KindOf(err)
	status := kind.Status()
	resp := ErrorResponse{Name: kind.Name()}

	if ae, ok := apperr.As(err); ok {
		resp.Message = ae.Message
		resp.Fields = ae.Fields
	} else {
		resp.Message = err.Error()
	}

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", map[string]any{
			"status": status,
			"kind":   string(kind),
			"err":    err,
		})
		if kind == apperr.KindInternal {
			resp.Message = "internal error"
		}
	} else {
		log.Debug("request rejected", map[string]any{
			"status": status,
			"kind":   string(kind),
			"err":    err,
		})
	}

	resp.Error = resp.Message
	WriteJSON(w, status, resp)
}

// DecodeJSON decodifica el body en dst rechazando campos desconocidos
// y cuerpos vacíos o con más de un valor JSON.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.KindBadRequest, "request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Wrap(apperr.KindPayloadTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err)
		}
		return apperr.Wrap(apperr.KindBadRequest, "invalid json", err)
	}
	if dec.More() {
		return apperr.New(apperr.KindBadRequest, "request body must contain a single JSON object")
	}
	return nil
}
