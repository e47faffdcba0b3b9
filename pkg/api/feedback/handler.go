package feedback

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one piece of user feedback kept in the in-memory log.
type Entry struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

const maxEntries = 1000

var (
	mu      sync.Mutex
	entries []Entry
)

type RecordRequest struct {
	Ticker  string `json:"ticker"`
	Message string `json:"message"`
}

type RecordResponse struct {
	ID string `json:"id"`
}

// HandleRecord appends a feedback entry. The log is bounded; the oldest
// entries are dropped past the cap.
func HandleRecord(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Ticker:    strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	mu.Lock()
	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	count := len(entries)
	mu.Unlock()

	fmt.Printf("[FEEDBACK] Recorded %s (%d total)\n", entry.ID, count)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecordResponse{ID: entry.ID})
}

// HandleCount reports how many entries the log holds.
func HandleCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	mu.Lock()
	count := len(entries)
	mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}
