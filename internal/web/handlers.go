package web

import (
	"net/http"
	"strconv"

	"github.com/gnoronha42/flor-de-maria-supply/internal/inventory"
	"github.com/gnoronha42/flor-de-maria-supply/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleIndex renders the main stock listing.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	products, err := s.service.Products(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.render(w, r, templates.Inventory(products, ""))
}

// handleSearch renders products matching the q query parameter.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	products, err := s.service.Search(r.Context(), query)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.render(w, r, templates.SearchResults(products, query))
}

// handleTransactions renders the stock movement history.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.service.Transactions(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.render(w, r, templates.Transactions(txs))
}

// handleDashboard renders the stock statistics page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.render(w, r, templates.Dashboard(stats))
}

// handleAddProductForm renders the empty product form.
func (s *Server) handleAddProductForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, templates.ProductForm(nil))
}

// handleAddProduct creates a product from the submitted form.
func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	name, quantity, price, err := productForm(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if _, err := s.service.CreateProduct(r.Context(), name, quantity, price); err != nil {
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEditProductForm renders the form pre-filled with the product.
func (s *Server) handleEditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	product, err := s.service.Product(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.render(w, r, templates.ProductForm(&product))
}

// handleEditProduct saves the submitted changes to a product.
func (s *Server) handleEditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	name, quantity, price, err := productForm(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.UpdateProduct(r.Context(), id, name, quantity, price); err != nil {
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDeleteProduct removes a product and its history.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeleteProduct(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleStockMovement applies a stock-in/stock-out movement from the
// per-row form on the listing pages.
func (s *Server) handleStockMovement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		s.respondError(w, r, invalidf("quantity %q is not a number", r.FormValue("quantity")))
		return
	}
	typ := inventory.TransactionType(r.FormValue("type"))

	if _, err := s.service.RecordMovement(r.Context(), id, typ, quantity); err != nil {
		s.respondError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidf("product id %q is not a number", raw)
	}
	return id, nil
}

// productForm reads the shared add/edit form fields.
func productForm(r *http.Request) (name string, quantity int, price float64, err error) {
	if err := r.ParseForm(); err != nil {
		return "", 0, 0, invalidf("invalid form data")
	}

	name = r.FormValue("name")

	quantity, err = strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		return "", 0, 0, invalidf("quantity %q is not a number", r.FormValue("quantity"))
	}

	price, err = strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return "", 0, 0, invalidf("price %q is not a number", r.FormValue("price"))
	}

	return name, quantity, price, nil
}
