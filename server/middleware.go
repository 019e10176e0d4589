package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
)

type contextKey int

var jwtCtxKey contextKey = 1

type handlerAdapter func(http.HandlerFunc) http.HandlerFunc

// AdaptHandler will wrap h with the supplied middleware; note that the
// middleware will be evaluated in the order they are supplied
func adaptHandler(h http.HandlerFunc, opts ...handlerAdapter) http.HandlerFunc {
	for i := range opts {
		opt := opts[len(opts)-1-i]
		h = opt(h)
	}
	return h
}

// Convenience middleware for the JSON routes. The handler recovers from
// panics, limits the body size that clients can send, answers with
// application/json and carries the usual CORS settings.
func apiMode(l *slog.Logger, maxBytes int64, headers, methods, origins []string) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		next = makeGraceful(l)(next)
		next = setMaxBytesReader(maxBytes)(next)
		next = setContentType("application/json")(next)
		return handlers.CORS(
			handlers.AllowedHeaders(headers),
			handlers.AllowedMethods(methods),
			handlers.AllowedOrigins(origins),
		)(next).ServeHTTP
	}
}

// htmlMode is the page counterpart of apiMode. Pages are same-origin so no
// CORS headers are added.
func htmlMode(l *slog.Logger) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		next = makeGraceful(l)(next)
		return setContentType("text/html; charset=utf-8")(next)
	}
}

func setContentType(content string) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", content)
			next(w, r)
		}
	}
}

func makeGraceful(l *slog.Logger) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err != nil {
					l.Error("recovered from panic", "path", r.URL.Path)
					switch v := err.(type) {
					case error:
						writeInternalError(l, w, v)
					case string:
						writeInternalError(l, w, fmt.Errorf("%s", v))
					default:
						writeInternalError(l, w, fmt.Errorf("recovered but unexpected type from recover()"))
					}
				}
			}()
			next.ServeHTTP(w, r)
		}
	}
}

func setMaxBytesReader(mb int64) handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, mb)
			next(w, r)
		}
	}
}

// mustAuth requires a bearer token issued by /token.
func mustAuth() handlerAdapter {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ts := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if ts == "" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "missing authorization header"})
				return
			}
			claims, err := parseAccessToken(ts)
			if err != nil {
				// expired and malformed tokens are routine, so nothing is logged
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(DefaultJSONResponse{Error: "bad token value"})
				return
			}
			ctx := context.WithValue(r.Context(), jwtCtxKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}
