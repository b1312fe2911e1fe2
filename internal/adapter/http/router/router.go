package router

import (
	"net/http"

	"github.com/gorilla/mux"
)

type BankingRouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

func New(bankingController BankingRouteRegistrar) *mux.Router {
	router := mux.NewRouter()
	registerSwaggerRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	if bankingController != nil {
		bankingController.RegisterRoutes(router)
	}

	return router
}
