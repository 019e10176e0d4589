package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/loader"
)

const reloadTimeout = 2 * time.Minute

// handlePing reports liveness along with the load status
func handlePing(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := c.Snapshot()
		total, visible := s.Counts()
		json.NewEncoder(w).Encode(PingResponse{
			Message: "PONG",
			Status:  s.Status,
			Total:   total,
			Visible: visible,
		})
	}
}

// handleIssueToken returns a token
func handleIssueToken(l *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := r.Header.Get("Authorization")
		if t == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "must supply authorization header"})
			return
		}
		email := r.URL.Query().Get("email")
		if email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "must supply email"})
			return
		}
		if getSecretKey() == "" || t != getSecretKey() {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "not authorized"})
			return
		}
		sc := jwt.StandardClaims{
			ExpiresAt: time.Now().Add(2 * 7 * 24 * time.Hour).Unix(),
		}
		c := authJWTClaims{
			StandardClaims: sc,
			Email:          email,
		}
		token, err := generateAccessToken(c)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		l.Warn("issuing sudo token", "email", email)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DefaultJSONResponse{Message: token})
	}
}

// handleReload runs the loader now. A failed load is reported as a bad
// gateway with the load failure message; the collection is left empty.
func handleReload(l *slog.Logger, c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the load outlives a client that hangs up
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), reloadTimeout)
		defer cancel()

		err := c.Load(ctx)
		if err != nil {
			var lf *loader.LoadFailure
			if errors.As(err, &lf) {
				w.WriteHeader(http.StatusBadGateway)
				json.NewEncoder(w).Encode(DefaultJSONResponse{Error: lf.Error()})
				return
			}
			writeInternalError(l, w, err)
			return
		}
		s := c.Snapshot()
		total, _ := s.Counts()
		msg := fmt.Sprintf("loaded %d listings from %s", total, s.Source)
		if s.UsedFallback {
			msg += " (fallback)"
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DefaultJSONResponse{Message: msg})
	}
}
