package handlers

import (
	"encoding/json"
	"net/http"
)

type auditContentRequest struct {
	ContentToAudit string `json:"content_to_audit"`
	Context        string `json:"context"`
}

type auditContentResponse struct {
	Response string `json:"response"`
}

// AuditContent judges arbitrary text against the brand guidelines and returns
// the structured report serialized as a JSON string, matching the shape of
// the other generation responses.
func (a *App) AuditContent(w http.ResponseWriter, r *http.Request) {
	var req auditContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	report, err := a.Dispatcher.AuditContent(r.Context(), req.ContentToAudit, a.Store.Resolve(req.Context))
	if err != nil {
		a.fail(w, err)
		return
	}

	serialized, err := json.Marshal(report)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to serialize report")
		return
	}
	a.json(w, http.StatusOK, auditContentResponse{Response: string(serialized)})
}
