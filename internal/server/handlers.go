package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/market/internal/models"
)

// pathID parses the {id} route parameter. A malformed ID is a bad request,
// reported directly; the bool result tells the caller to stop.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes the request body into v, reporting a bad request on
// malformed JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *Server) addCustomer(w http.ResponseWriter, r *http.Request) {
	var m models.Customer
	if !decodeBody(w, r, &m) {
		return
	}
	if err := s.customers.Add(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customer, err := s.customers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if customer == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var m models.Customer
	if !decodeBody(w, r, &m) {
		return
	}
	m.ID = id
	if err := s.customers.Update(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.customers.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) customerReceipts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	receipts, err := s.customers.Receipts(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (s *Server) customersByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customers, err := s.customers.ByProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// listProducts returns all products, narrowed by the optional minPrice,
// maxPrice and categoryId query parameters.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	products, err := s.products.ByFilter(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	var m models.Product
	if !decodeBody(w, r, &m) {
		return
	}
	if err := s.products.Add(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var m models.Product
	if !decodeBody(w, r, &m) {
		return
	}
	m.ID = id
	if err := s.products.Update(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.products.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var m models.ProductCategory
	if !decodeBody(w, r, &m) {
		return
	}
	if err := s.products.AddCategory(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var m models.ProductCategory
	if !decodeBody(w, r, &m) {
		return
	}
	m.ID = id
	if err := s.products.UpdateCategory(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) removeCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.products.RemoveCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// parseFilter builds a FilterSearch from query parameters; malformed values
// are a bad request.
func parseFilter(w http.ResponseWriter, r *http.Request) (*models.FilterSearch, bool) {
	filter := &models.FilterSearch{}
	q := r.URL.Query()

	if raw := q.Get("minPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid minPrice"})
			return nil, false
		}
		filter.MinPrice = &d
	}
	if raw := q.Get("maxPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid maxPrice"})
			return nil, false
		}
		filter.MaxPrice = &d
	}
	if raw := q.Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid categoryId"})
			return nil, false
		}
		filter.CategoryID = &id
	}
	return filter, true
}
