// Package httpapi exposes the credential engine's core services over
// HTTP: issuer/schema/verifier CRUD, credential issuance, and
// credential verification. The core services own all validation and
// error mapping; this layer only binds requests, routes them, and
// translates ServiceError categories to status codes.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ParichayaHQ/credentiald/internal/issuance"
	"github.com/ParichayaHQ/credentiald/internal/issuerservice"
	"github.com/ParichayaHQ/credentiald/internal/schemaservice"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/internal/verifyengine"
)

// Services bundles the core-service facades this transport exposes.
type Services struct {
	Issuers  *issuerservice.Service
	Schemas  *schemaservice.Service
	Issuance *issuance.Service
	Verifier *verifyengine.Service
}

// router wires Services to a mux.Router, applying CORS and request
// logging middleware.
type router struct {
	svc      Services
	log      logr.Logger
	validate *validator.Validate
}

// NewRouter builds the HTTP handler for the full API surface.
func NewRouter(svc Services, log logr.Logger) http.Handler {
	rt := &router{svc: svc, log: log, validate: validator.New()}

	mr := mux.NewRouter()
	api := mr.PathPrefix("/v1").Subrouter()

	api.HandleFunc("/issuers", rt.createIssuer).Methods("POST")
	api.HandleFunc("/issuers", rt.listIssuers).Methods("GET")
	api.HandleFunc("/issuers/{id}", rt.getIssuer).Methods("GET")
	api.HandleFunc("/issuers/{id}/verification-methods", rt.attachVerificationMethod).Methods("POST")

	api.HandleFunc("/schemas", rt.registerSchema).Methods("POST")
	api.HandleFunc("/schemas", rt.listSchemas).Methods("GET")
	api.HandleFunc("/schemas/{id}", rt.getSchema).Methods("GET")

	api.HandleFunc("/credentials", rt.issueCredential).Methods("POST")

	api.HandleFunc("/verifiers", rt.createVerifier).Methods("POST")
	api.HandleFunc("/verifiers", rt.listVerifiers).Methods("GET")
	api.HandleFunc("/verifiers/{id}", rt.getVerifier).Methods("GET")
	api.HandleFunc("/verifiers/{id}/verify", rt.verifyCredential).Methods("POST")

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return corsMiddleware.Handler(handlers.LoggingHandler(logWriter{rt.log}, mr))
}

// logWriter adapts logr.Logger to io.Writer so gorilla/handlers' Apache
// common-log-format logger can write through it.
type logWriter struct{ log logr.Logger }

func (w logWriter) Write(p []byte) (int, error) {
	w.log.V(1).Info("request", "line", string(p))
	return len(p), nil
}

type envelope struct {
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data, Timestamp: time.Now().UTC()})
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := svcerr.HTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: err.Error(), Timestamp: time.Now().UTC()})
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
