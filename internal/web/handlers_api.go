package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gnoronha42/flor-de-maria-supply/internal/inventory"
	"github.com/gnoronha42/flor-de-maria-supply/internal/logging"
)

// MaxImportSize caps the /api/import request body (10MB).
const MaxImportSize = 10 * 1024 * 1024

// importRequest is the {"products":[...]} interchange document, the same
// shape the seed importer writes as its snapshot.
type importRequest struct {
	Products []inventory.Record `json:"products"`
}

type importResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImportID string `json:"import_id,omitempty"`
}

// handleBulkImport replaces the whole catalog with the posted document.
func (s *Server) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportSize)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, invalidf("invalid JSON body: %v", err))
		return
	}

	result, err := s.service.Import(r.Context(), req.Products)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("bulk import completed",
		"import_id", result.ImportID,
		"products", result.Imported,
	)

	writeJSON(w, http.StatusOK, importResponse{
		Success:  true,
		Message:  fmt.Sprintf("Importados %d produtos", result.Imported),
		ImportID: result.ImportID,
	})
}
