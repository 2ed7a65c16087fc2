// Package pb holds the wire types and service descriptor of
// storefront.v1.Storefront.
package pb

import "github.com/rl1809/storefront/internal/core/domain"

type ListProductsRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Price    string `json:"price,omitempty"`
	Sort     string `json:"sort,omitempty"`
}

type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type LoginResponse struct {
	User domain.User `json:"user"`
}

type AddToCartRequest struct {
	ProductID string  `json:"productId"`
	Size      float64 `json:"size"`
	Color     string  `json:"color,omitempty"`
	Quantity  int32   `json:"quantity,omitempty"`
}

type AddToCartResponse struct {
	Item domain.CartItem `json:"item"`
}

type GetCartRequest struct{}

type GetCartResponse struct {
	Items      []domain.CartItem `json:"items"`
	Count      int32             `json:"count"`
	Subtotal   string            `json:"subtotal"`
	Shipping   string            `json:"shipping"`
	Tax        string            `json:"tax"`
	GrandTotal string            `json:"grandTotal"`
}

type PlaceOrderRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Payment         domain.PaymentDetails  `json:"payment"`
}

type PlaceOrderResponse struct {
	Order domain.Order `json:"order"`
}

type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

func (x *ListProductsRequest) GetQuery() string {
	if x != nil {
		return x.Query
	}
	return ""
}

func (x *AddToCartRequest) GetProductId() string {
	if x != nil {
		return x.ProductID
	}
	return ""
}

func (x *AddToCartRequest) GetQuantity() int32 {
	if x != nil {
		return x.Quantity
	}
	return 0
}
