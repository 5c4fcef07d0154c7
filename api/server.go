package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-filler/api/handlers"
)

func NewRouter(fillsHandler *handlers.FillsHandler, chainsHandler *handlers.ChainsHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/fills", fillsHandler.HandleFill).Methods("POST")
	r.HandleFunc("/v1/fills/{orderId}", fillsHandler.HandleStatus).Methods("GET")
	r.HandleFunc("/v1/orders", fillsHandler.HandleOrders).Methods("GET")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}", chainsHandler.HandleRequest).Methods("GET")
	return r
}

func Serve(
	ctx context.Context,
	addr string,
	fillsHandler *handlers.FillsHandler,
	chainsHandler *handlers.ChainsHandler,
) {
	server := &http.Server{
		Addr:        addr,
		Handler:     NewRouter(fillsHandler, chainsHandler),
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
