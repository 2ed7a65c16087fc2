package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rl1809/storefront/internal/core/catalog"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/navigation"
	"github.com/rl1809/storefront/internal/core/service"
)

type HTTPHandler struct {
	store  *service.Storefront
	nav    *navigation.Navigator
	logger zerolog.Logger
}

type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Data     any    `json:"data,omitempty"`
}

type LoginHTTPRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LineHTTPRequest addresses a cart line; Quantity is ignored on delete.
type LineHTTPRequest struct {
	ProductID string  `json:"productId"`
	Size      float64 `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

type CheckoutHTTPRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Payment         domain.PaymentDetails  `json:"payment"`
}

type NavigateHTTPRequest struct {
	View      string `json:"view"`
	ProductID string `json:"productId"`
}

type SearchHTTPRequest struct {
	Query string `json:"query"`
}

type ProductList struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

type ViewState struct {
	navigation.State
	ShowsHeader bool `json:"showsHeader"`
}

func NewHTTPHandler(store *service.Storefront, nav *navigation.Navigator, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{store: store, nav: nav, logger: logger}
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/facets", h.Facets)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session)
			r.Post("/", h.Login)
			r.Delete("/", h.Logout)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddToCart)
			r.Patch("/items", h.UpdateQuantity)
			r.Delete("/items", h.RemoveFromCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", h.Quote)
			r.Post("/", h.PlaceOrder)
		})

		r.Get("/orders", h.ListOrders)

		r.Route("/view", func(r chi.Router) {
			r.Get("/", h.View)
			r.Post("/", h.Navigate)
			r.Post("/search", h.Search)
		})
	})
	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProducts filters the catalog. Without a q parameter the navigator's
// search query applies.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := parseFilter(q.Get("q"), q.Get("category"), q.Get("brand"), q.Get("price"), q.Get("sort"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !q.Has("q") {
		f.Query = h.nav.State().Query
	}

	products := h.store.Products(f)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ProductList{Products: products, Count: len(products)},
	})
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Product(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: p})
}

func (h *HTTPHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: Facets{
			Categories: h.store.Catalog.Categories(),
			Brands:     h.store.Catalog.Brands(),
		},
	})
}

func (h *HTTPHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := h.store.Auth.CurrentUser()
	if !ok {
		writeJSON(w, http.StatusOK, Response{Success: true})
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.store.Auth.Login(r.Context(), domain.Credentials{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.nav.Navigate(navigation.ViewHome)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "logged in", Data: user})
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Auth.Logout()
	h.nav.Navigate(navigation.ViewHome)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "logged out"})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.CartSummary()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: summary})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req LineHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	item, err := h.store.AddToCart(r.Context(), service.AddToCartRequest{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "added to cart", Data: item})
}

func (h *HTTPHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req LineHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	key := domain.NewLineKey(req.ProductID, req.Size, req.Color)
	if err := h.store.UpdateQuantity(r.Context(), key, req.Quantity); err != nil {
		h.writeError(w, err)
		return
	}
	h.GetCart(w, r)
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req LineHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	key := domain.NewLineKey(req.ProductID, req.Size, req.Color)
	if err := h.store.RemoveFromCart(r.Context(), key); err != nil {
		h.writeError(w, err)
		return
	}
	h.GetCart(w, r)
}

func (h *HTTPHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.store.Checkout.Begin()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.nav.Navigate(navigation.ViewCheckout)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: quote})
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.store.PlaceOrder(r.Context(), req.ShippingAddress, req.Payment)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.nav.Navigate(navigation.ViewOrderSuccess)
	writeJSON(w, http.StatusCreated, Response{
		Success:  true,
		Message:  "order placed successfully",
		Redirect: string(navigation.ViewOrderSuccess),
		Data:     order,
	})
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.MyOrders()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

func (h *HTTPHandler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: h.viewState()})
}

// Navigate switches views. A productId with product-detail selects it first.
func (h *HTTPHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	view, err := navigation.ParseView(req.View)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if view == navigation.ViewProductDetail && req.ProductID != "" {
		p, err := h.store.Product(req.ProductID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.nav.SelectProduct(p)
	} else {
		h.nav.Navigate(view)
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Data: h.viewState()})
}

func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchHTTPRequest
	if !decode(w, r, &req) {
		return
	}
	h.nav.Search(req.Query)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: h.viewState()})
}

func (h *HTTPHandler) viewState() ViewState {
	st := h.nav.State()
	return ViewState{State: st, ShowsHeader: st.View.ShowsHeader()}
}

// writeError maps domain errors to a status code. Session and empty-cart
// guards answer with the view the client should switch to.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	if redirect, ok := guardRedirect(err); ok {
		h.nav.Navigate(redirect)
		status := http.StatusUnauthorized
		if redirect == navigation.ViewCart {
			status = http.StatusConflict
		}
		writeJSON(w, status, Response{Success: false, Message: err.Error(), Redirect: string(redirect)})
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
		message = "internal error"
	}
	writeJSON(w, status, Response{Success: false, Message: message})
}

func guardRedirect(err error) (navigation.View, bool) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return navigation.ViewLogin, true
	case errors.Is(err, service.ErrEmptyCart):
		return navigation.ViewCart, true
	}
	return "", false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSizeRequired),
		errors.Is(err, service.ErrInvalidSize),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrIncompleteAddress),
		errors.Is(err, service.ErrIncompletePayment),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, catalog.ErrUnknownPriceBucket),
		errors.Is(err, catalog.ErrUnknownSortKey),
		errors.Is(err, navigation.ErrUnknownView):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseFilter(query, category, brand, price, sort string) (catalog.Filter, error) {
	bucket, err := catalog.ParsePriceBucket(price)
	if err != nil {
		return catalog.Filter{}, err
	}
	key, err := catalog.ParseSortKey(sort)
	if err != nil {
		return catalog.Filter{}, err
	}
	return catalog.Filter{Query: query, Category: category, Brand: brand, Price: bucket, Sort: key}, nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "invalid request body",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
