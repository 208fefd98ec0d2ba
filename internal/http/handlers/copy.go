package handlers

import (
	"encoding/json"
	"net/http"
)

type generateCopyRequest struct {
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

type generateCopyResponse struct {
	Response string `json:"response"`
}

func (a *App) GenerateCopy(w http.ResponseWriter, r *http.Request) {
	var req generateCopyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	out, err := a.Dispatcher.GenerateCopy(r.Context(), req.Prompt, a.Store.Resolve(req.Context))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, generateCopyResponse{Response: out})
}
