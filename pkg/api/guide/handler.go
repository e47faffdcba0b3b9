package guide

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"investilearn/pkg/core/guide"
)

var explainer *guide.Explainer

// InitHandler wires the explainer used by the explain endpoint.
func InitHandler(e *guide.Explainer) {
	explainer = e
}

type ExplainRequest struct {
	RatioName string `json:"ratio_name"`
	Value     string `json:"value"`
}

// HandleExplain returns a beginner-friendly explanation of one ratio,
// optionally grounded in the company's current value.
func HandleExplain(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.RatioName)
	if name == "" {
		http.Error(w, "ratio_name is required", http.StatusBadRequest)
		return
	}
	fmt.Printf("[GUIDE] Explain: %s\n", name)

	resp := explainer.Explain(r.Context(), name, req.Value)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
