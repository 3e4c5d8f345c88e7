package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
	"github.com/svend4/flowershop-orders/internal/usecase"
)

type Server struct {
	Router *mux.Router
	Place  usecase.PlaceOrder
	Store  domain.OrderStore
	Logger *zap.Logger
}

func NewServer(place usecase.PlaceOrder, store domain.OrderStore, logger *zap.Logger) *Server {
	s := &Server{Router: mux.NewRouter(), Place: place, Store: store, Logger: logger}
	s.Router.HandleFunc("/api/orders", s.handleCreate).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/orders/{id}", s.handleGet).Methods(http.MethodGet)
	s.Router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return s
}

type createOrderRequest struct {
	Name  string       `json:"name"`
	Phone string       `json:"phone"`
	Items []intakeItem `json:"items"`
}

type intakeItem struct {
	ProductID flexInt `json:"product_id"`
	Qty       flexInt `json:"qty"`
}

// flexInt tolerates integers sent as JSON strings or junk; anything
// unparsable decodes to zero and falls back to defaults downstream.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "name/items required")
		return
	}

	lines := make([]domain.LineInput, 0, len(req.Items))
	for _, it := range req.Items {
		qty := int(it.Qty)
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, domain.LineInput{ProductID: int64(it.ProductID), Qty: qty})
	}

	orderID, err := s.Place.Execute(r.Context(), domain.OrderRequest{
		CustomerName: name,
		Phone:        strings.TrimSpace(req.Phone),
		Lines:        lines,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.Logger.Error("create order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"order_id": orderID})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, err := s.Store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		s.Logger.Error("get order failed", zap.Int64("order_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read order")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
