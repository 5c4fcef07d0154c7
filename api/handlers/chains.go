package handlers

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
)

type ChainInfo struct {
	ChainID uint64                    `json:"chainId"`
	Name    string                    `json:"name"`
	Orders  common.Address            `json:"orders"`
	Permit2 common.Address            `json:"permit2"`
	Tokens  map[string]common.Address `json:"tokens"`
}

type ChainsHandler struct {
	chains map[uint64]ChainInfo
}

func NewChainsHandler(chains map[uint64]ChainInfo) *ChainsHandler {
	return &ChainsHandler{
		chains: chains,
	}
}

// HandleRequest returns the contracts and tokens the filler uses on the requested chain
func (h *ChainsHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chainId, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		JSONError(w, fmt.Errorf("invalid chainId"), http.StatusBadRequest)
		return
	}

	info, ok := h.chains[chainId.Uint64()]
	if !ok {
		JSONError(w, fmt.Errorf("chain %d not supported", chainId.Uint64()), http.StatusNotFound)
		return
	}

	JSONResponse(w, info, http.StatusOK)
}
