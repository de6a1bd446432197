package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ParichayaHQ/credentiald/internal/issuance"
	"github.com/ParichayaHQ/credentiald/internal/svcerr"
	"github.com/ParichayaHQ/credentiald/pkg/vctypes"
)

// queryLimit parses the ?limit= query parameter: a missing or
// unparseable value is left as 0, which every service's List* operation
// normalizes to its own default.
func queryLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}

type createIssuerRequest struct {
	ID   string `json:"id" validate:"required,url"`
	Name string `json:"name" validate:"required"`
}

func (rt *router) createIssuer(w http.ResponseWriter, r *http.Request) {
	var req createIssuerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("createIssuer", "body", err))
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeServiceError(w, svcerr.NewField("createIssuer", "body", err))
		return
	}
	id, err := rt.svc.Issuers.CreateIssuer(r.Context(), req.ID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (rt *router) getIssuer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	issuer, err := rt.svc.Issuers.GetIssuer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issuer)
}

func (rt *router) listIssuers(w http.ResponseWriter, r *http.Request) {
	issuers, err := rt.svc.Issuers.ListIssuers(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issuers)
}

type attachVerificationMethodRequest struct {
	ID   string `json:"id" validate:"required,url"`
	Type string `json:"type" validate:"required"`
}

func (rt *router) attachVerificationMethod(w http.ResponseWriter, r *http.Request) {
	issuerID := mux.Vars(r)["id"]
	var req attachVerificationMethodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("attachVerificationMethod", "body", err))
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeServiceError(w, svcerr.NewField("attachVerificationMethod", "body", err))
		return
	}
	vmID, err := rt.svc.Issuers.AttachVerificationMethod(r.Context(), issuerID, req.ID, req.Type)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": vmID.String()})
}

type registerSchemaRequest struct {
	ID          string                            `json:"id" validate:"required,url"`
	Type        string                            `json:"type" validate:"required"`
	Name        string                            `json:"name" validate:"required"`
	Description string                            `json:"description"`
	Properties  map[string]vctypes.SchemaProperty `json:"properties" validate:"required"`
}

func (rt *router) registerSchema(w http.ResponseWriter, r *http.Request) {
	var req registerSchemaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("registerSchema", "body", err))
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeServiceError(w, svcerr.NewField("registerSchema", "body", err))
		return
	}
	id, err := rt.svc.Schemas.RegisterSchema(r.Context(), req.ID, req.Type, req.Name, req.Description, req.Properties)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (rt *router) getSchema(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	schema, err := rt.svc.Schemas.GetSchema(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (rt *router) listSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := rt.svc.Schemas.ListSchemas(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

type issueCredentialRequest struct {
	Context             []string                         `json:"context" validate:"required,min=1"`
	ID                  string                           `json:"id" validate:"required,url"`
	Type                []string                         `json:"type" validate:"required,min=1"`
	Issuer              string                           `json:"issuer" validate:"required,url"`
	ValidFrom           string                           `json:"valid_from" validate:"required"`
	ValidUntil          string                           `json:"valid_until" validate:"required"`
	CredentialSubject   map[string]vctypes.ClaimProperty `json:"credential_subject" validate:"required"`
	CredentialSchemaIDs []string                         `json:"credential_schema_ids"`
}

func (rt *router) issueCredential(w http.ResponseWriter, r *http.Request) {
	var req issueCredentialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("issueCredential", "body", err))
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeServiceError(w, svcerr.NewField("issueCredential", "body", err))
		return
	}
	vc, err := rt.svc.Issuance.IssueCredential(r.Context(), issuance.IssueCredentialRequest{
		Context:             req.Context,
		CredentialID:        req.ID,
		Type:                req.Type,
		IssuerID:            req.Issuer,
		ValidFrom:           req.ValidFrom,
		ValidUntil:          req.ValidUntil,
		CredentialSubject:   req.CredentialSubject,
		CredentialSchemaIDs: req.CredentialSchemaIDs,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vc)
}

type createVerifierRequest struct {
	ID       string `json:"id" validate:"required,url"`
	Name     string `json:"name" validate:"required"`
	SchemaID string `json:"schema_id" validate:"required,url"`
}

func (rt *router) createVerifier(w http.ResponseWriter, r *http.Request) {
	var req createVerifierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("createVerifier", "body", err))
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeServiceError(w, svcerr.NewField("createVerifier", "body", err))
		return
	}
	id, err := rt.svc.Verifier.CreateVerifier(r.Context(), req.ID, req.Name, req.SchemaID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (rt *router) getVerifier(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	verifier, err := rt.svc.Verifier.GetVerifier(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifier)
}

func (rt *router) listVerifiers(w http.ResponseWriter, r *http.Request) {
	verifiers, err := rt.svc.Verifier.ListVerifiers(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifiers)
}

type verifyCredentialRequest struct {
	Credential vctypes.VerifiableCredential `json:"credential" validate:"required"`
}

func (rt *router) verifyCredential(w http.ResponseWriter, r *http.Request) {
	verifierID := mux.Vars(r)["id"]
	var req verifyCredentialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, svcerr.NewField("verifyCredential", "body", err))
		return
	}
	result, err := rt.svc.Verifier.VerifyCredential(r.Context(), verifierID, req.Credential)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Verified: result.Verified, Reason: result.Reason})
}

type verifyResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}
