package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	created, err := s.catalog.Create(r.Context(), domain.Product{
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		Category:  req.Category,
		Inventory: req.Inventory,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(*created))
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid product id")
		return
	}

	product, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*product))
}

func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid product id")
		return
	}

	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.catalog.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*updated))
}

func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid product id")
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "product deleted successfully", ID: id})
}

func (s *Server) ListInventory(w http.ResponseWriter, r *http.Request) {
	levels, err := s.catalog.Inventory(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]stockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, stockLevelResponse{ProductID: l.ProductID, Inventory: l.Inventory})
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateInventory overwrites a product's stock with the absolute count
// passed as the quantity query parameter.
func (s *Server) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid product id")
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		s.writeBadRequest(w, "quantity query parameter is required")
		return
	}

	if err := s.catalog.SetInventory(r.Context(), id, quantity); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product_id": id,
		"inventory":  quantity,
		"message":    "inventory updated",
	})
}
