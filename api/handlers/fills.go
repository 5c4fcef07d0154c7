package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/sprintertech/sprinter-filler/cache"
	"github.com/sprintertech/sprinter-filler/orders"
)

type StatusStore interface {
	Status(id common.Hash) (cache.FillStatus, error)
}

type OrderFiller interface {
	PendingOrders(ctx context.Context) ([]orders.SignedOrder, error)
	FillOrders(ctx context.Context, ids []common.Hash) ([]cache.FillStatus, error)
}

type FillBody struct {
	Orders []string `json:"orders"`
}

type FillsHandler struct {
	store  StatusStore
	filler OrderFiller
}

func NewFillsHandler(store StatusStore, filler OrderFiller) *FillsHandler {
	return &FillsHandler{
		store:  store,
		filler: filler,
	}
}

// HandleStatus returns the status of the last fill attempt of the order
func (h *FillsHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderId, ok := vars["orderId"]
	if !ok || !isHash(orderId) {
		JSONError(w, fmt.Errorf("invalid 'orderId'"), http.StatusBadRequest)
		return
	}

	status, err := h.store.Status(common.HexToHash(orderId))
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	JSONResponse(w, status, http.StatusOK)
}

// HandleFill fills the pending orders with the requested ids right away and returns
// the status of every attempted order
func (h *FillsHandler) HandleFill(w http.ResponseWriter, r *http.Request) {
	b := &FillBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	if len(b.Orders) == 0 {
		JSONError(w, fmt.Errorf("missing field 'orders'"), http.StatusBadRequest)
		return
	}
	ids := make([]common.Hash, len(b.Orders))
	for i, id := range b.Orders {
		if !isHash(id) {
			JSONError(w, fmt.Errorf("invalid order id %s", id), http.StatusBadRequest)
			return
		}
		ids[i] = common.HexToHash(id)
	}

	statuses, err := h.filler.FillOrders(r.Context(), ids)
	if err != nil {
		JSONError(w, fmt.Errorf("fill failed: %s", err), http.StatusInternalServerError)
		return
	}

	JSONResponse(w, statuses, http.StatusOK)
}

type OrderResponse struct {
	ID    common.Hash        `json:"id"`
	Order orders.SignedOrder `json:"order"`
}

// HandleOrders lists the orders of the transaction cache the filler has not filled yet
func (h *FillsHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	os, err := h.filler.PendingOrders(r.Context())
	if err != nil {
		JSONError(w, err, http.StatusBadGateway)
		return
	}

	resp := make([]OrderResponse, len(os))
	for i, o := range os {
		resp[i] = OrderResponse{
			ID:    o.ID(),
			Order: o,
		}
	}
	JSONResponse(w, resp, http.StatusOK)
}

func isHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
