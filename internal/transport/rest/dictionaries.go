package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/jisho-backend/internal/service/dictionaries"
)

type dictionaryLister interface {
	List(ctx context.Context) ([]dictionaries.Summary, error)
}

// DictionaryHandler serves the list of imported dictionaries.
type DictionaryHandler struct {
	log   *slog.Logger
	dicts dictionaryLister
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(logger *slog.Logger, dicts dictionaryLister) *DictionaryHandler {
	return &DictionaryHandler{log: logger.With("handler", "dictionaries"), dicts: dicts}
}

// DictionaryResponse describes one imported dictionary.
type DictionaryResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Revision   string    `json:"revision"`
	Bilingual  bool      `json:"bilingual"`
	Entries    int       `json:"entries"`
	ImportedAt time.Time `json:"imported_at"`
}

// List handles GET /api/dictionaries.
func (h *DictionaryHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.dicts.List(r.Context())
	if err != nil {
		writeError(r.Context(), h.log, w, err)
		return
	}

	out := make([]DictionaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = DictionaryResponse{
			ID:         s.ID,
			Title:      s.Title,
			Revision:   s.Revision,
			Bilingual:  s.Bilingual,
			Entries:    s.Entries,
			ImportedAt: s.ImportedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
