package handler

import (
	"encoding/json"
	"net/http"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid customer id")
		return
	}

	customer, err := s.customers.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*customer))
}

// UpdateCustomer lets the authenticated actor edit its own profile.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid customer id")
		return
	}

	var req customerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeBadRequest(w, "invalid request body")
		return
	}

	actor := actorFrom(r.Context())
	updated, err := s.customers.Update(r.Context(), actor.ID, id, domain.CustomerPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*updated))
}

func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.writeBadRequest(w, "invalid customer id")
		return
	}

	actor := actorFrom(r.Context())
	if err := s.customers.Delete(r.Context(), actor.ID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "customer deleted successfully", ID: id})
}
