package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"
)

func writeInternalError(l *slog.Logger, w http.ResponseWriter, e error) {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) // skip [Callers, writeInternalError]
	r := slog.NewRecord(time.Now(), slog.LevelError, e.Error(), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "internal error"})
}

func writeEmptyResultError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "empty result set"})
}

func writeBadRequestError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(DefaultJSONResponse{Error: err.Error()})
}

// writeDecodeError reports a body that decodeJSONBody rejected; anything
// that is not a *MalformedRequest is an internal error.
func writeDecodeError(l *slog.Logger, w http.ResponseWriter, err error) {
	var mr *MalformedRequest
	if errors.As(err, &mr) {
		w.WriteHeader(mr.status)
		json.NewEncoder(w).Encode(DefaultJSONResponse{Error: mr.msg})
		return
	}
	writeInternalError(l, w, err)
}
