package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/models"
)

const maxOrderQuantity = 100

type OrderResponse struct {
	ID              int64     `json:"id" example:"11"`
	Reference       string    `json:"reference" example:"ord_V1StGXR8Z5jdHi6B"`
	PostcardID      int64     `json:"postcardId" example:"3"`
	Quantity        int       `json:"quantity" example:"10"`
	RecipientName   string    `json:"recipientName"`
	ShippingAddress string    `json:"shippingAddress"`
	ContactEmail    *string   `json:"contactEmail,omitempty"`
	Status          string    `json:"status" example:"pending"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		Reference:       o.Reference,
		PostcardID:      o.PostcardID,
		Quantity:        o.Quantity,
		RecipientName:   o.RecipientName,
		ShippingAddress: o.ShippingAddress,
		ContactEmail:    o.ContactEmail,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
	}
}

type CreateOrderRequest struct {
	PostcardID      int64   `json:"postcardId" example:"3"`
	Quantity        int     `json:"quantity" example:"10"`
	RecipientName   string  `json:"recipientName" example:"Jan Kowalski"`
	ShippingAddress string  `json:"shippingAddress" example:"ul. Długa 1, 00-001 Warszawa"`
	ContactEmail    *string `json:"contactEmail"`
}

// generateOrderReference builds a short, URL-safe reference the print
// shop and the customer can quote to each other.
func generateOrderReference() (string, error) {
	generateID, err := nanoid.Standard(16)
	if err != nil {
		return "", err
	}
	return "ord_" + generateID(), nil
}

// @Summary      Place a print order
// @Description  Orders physical prints of a postcard. The returned reference identifies the order in all further contact.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderRequest  body      CreateOrderRequest  true  "Order details"
// @Success      201  {object}  OrderResponse
// @Failure      400  {string}  string "Invalid order"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /orders [post]
func (s *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Quantity < 1 || req.Quantity > maxOrderQuantity {
		http.Error(w, "Quantity must be between 1 and 100", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RecipientName) == "" || strings.TrimSpace(req.ShippingAddress) == "" {
		http.Error(w, "Recipient name and shipping address are required", http.StatusBadRequest)
		return
	}

	reference, err := generateOrderReference()
	if err != nil {
		log.Printf("CRITICAL: Failed to initialize nanoid generator: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	order, err := s.store.CreateOrder(r.Context(), database.CreateOrderParams{
		Reference:       reference,
		PostcardID:      req.PostcardID,
		Quantity:        req.Quantity,
		RecipientName:   strings.TrimSpace(req.RecipientName),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		ContactEmail:    req.ContactEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, database.ErrOrderPostcardAbsent):
			http.Error(w, "Postcard does not exist", http.StatusBadRequest)
		case errors.Is(err, database.ErrDuplicateOrderRef):
			// Kolizja 16-znakowego nanoida praktycznie się nie zdarza
			log.Printf("ERROR: Order reference collision: %s", reference)
			http.Error(w, "Failed to place order, please retry", http.StatusInternalServerError)
		default:
			log.Printf("ERROR: Failed to create order: %v", err)
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
		}
		return
	}

	log.Printf("Przyjęto zamówienie %s na pocztówkę %d (%d szt.)", order.Reference, order.PostcardID, order.Quantity)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toOrderResponse(order))
}

// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  OrderResponse
// @Router       /orders [get]
func (s *Server) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      int  true  "Order ID"
// @Success      200  {object}  OrderResponse
// @Failure      404  {string}  string "Order not found"
// @Router       /orders/{orderId} [get]
func (s *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := s.store.GetOrder(r.Context(), orderID)
	if err != nil {
		http.Error(w, "Failed to retrieve order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toOrderResponse(order))
}
