// Package httpapi maps the matcher entry points onto HTTP. Error kinds
// translate to status codes here: invalid input is 400, an unavailable
// registry is 502, everything else is 500.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trialmatch/internal/matcher"
	"trialmatch/internal/profile"
	"trialmatch/internal/registry"
)

const maxBodyBytes = 1 << 20

type MatchService interface {
	ExtractAndSearch(ctx context.Context, transcript string) (matcher.Result, error)
	SearchByProfile(ctx context.Context, p profile.PatientProfile) (matcher.Result, error)
}

type Server struct {
	service MatchService
}

func NewServer(service MatchService) http.Handler {
	s := &Server{service: service}
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/match", s.handleMatch)
		r.Post("/search", s.handleSearch)
	})
	return r
}

type matchRequest struct {
	Transcript string `json:"transcript"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, &profile.InvalidInputError{Reason: "malformed request body"})
		return
	}
	res, err := s.service.ExtractAndSearch(r.Context(), req.Transcript)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var p profile.PatientProfile
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, r, &profile.InvalidInputError{Reason: "malformed request body"})
		return
	}
	res, err := s.service.SearchByProfile(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var invalid *profile.InvalidInputError
	var apiErr *registry.APIError
	switch {
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.As(err, &apiErr):
		status = http.StatusBadGateway
	}
	requestID, _ := r.Context().Value(requestIDKey{}).(string)
	log.Printf("httpapi request_error request_id=%s path=%s status=%d err=%q", requestID, r.URL.Path, status, err.Error())
	writeJSON(w, status, map[string]string{"error": err.Error(), "requestId": requestID})
}

type requestIDKey struct{}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		started := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		log.Printf("httpapi request request_id=%s method=%s path=%s elapsed_ms=%d", requestID, r.Method, r.URL.Path, time.Since(started).Milliseconds())
	})
}
