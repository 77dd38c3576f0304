package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	domainerrors "pricegate/contexts/commerce/catalog-service/domain/errors"
	catalogtransport "pricegate/contexts/commerce/catalog-service/transport/http"
	"pricegate/internal/app/registry"
	_ "pricegate/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	registry      *registry.Registry
	enableSwagger bool
}

func New(reg *registry.Registry, logger *slog.Logger, addr string, enableSwagger bool) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		registry:      reg,
		enableSwagger: enableSwagger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	if s.enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("GET /api/catalog/v1/products", s.handleListProducts)
	s.mux.HandleFunc("POST /api/catalog/v1/products", s.handleCreateProduct)
	s.mux.HandleFunc("PUT /api/catalog/v1/products/{product_id}", s.handleUpsertProduct)

	s.mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	auth := s.registry.AuthenticateRequest(r.Context(), r)
	resp := s.registry.Module().Handler.ListProductsHandler(r.Context(), auth)
	writeJSON(w, listStatus(resp), resp)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalogtransport.UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp := s.registry.Module().Handler.CreateProductHandler(r.Context(), req)
	writeJSON(w, upsertStatus(resp), resp)
}

func (s *Server) handleUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var req catalogtransport.UpsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	productID := r.PathValue("product_id")
	resp := s.registry.Module().Handler.UpsertProductHandler(r.Context(), productID, req)
	writeJSON(w, upsertStatus(resp), resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func listStatus(resp catalogtransport.ListProductsResponse) int {
	if resp.Success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

func upsertStatus(resp catalogtransport.UpsertProductResponse) int {
	switch {
	case resp.Success:
		return http.StatusOK
	case resp.Error == domainerrors.ErrInvalidRequest.Error():
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, catalogtransport.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
