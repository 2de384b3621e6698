// Package httpapi exposes the storefront REST API.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	app "github.com/shoplite/shoplite/internal/app"
	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/metrics"
	"github.com/shoplite/shoplite/internal/apperr"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the storefront REST API.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}

	r := chi.NewRouter()
	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.app.Catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	created, err := h.app.Accounts.Signup(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully!",
		"user":    created,
	})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	u, err := h.app.Accounts.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful!",
		"user":    u,
	})
}

func (h *handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var payload order.Order
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// The id and date are server-assigned; anything the client supplied for
	// them is discarded.
	payload.ID = 0
	payload.Date = time.Time{}

	created, err := h.app.Orders.Place(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order placed successfully!",
		"order":   created,
	})
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeError(w http.ResponseWriter, err error) {
	writeMessage(w, apperr.HTTPStatus(err), apperr.Message(err))
}
