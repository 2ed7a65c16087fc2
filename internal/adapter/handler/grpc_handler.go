package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/storefront/internal/adapter/handler/pb"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

type GRPCHandler struct {
	pb.UnimplementedStorefrontServer
	store  *service.Storefront
	logger zerolog.Logger
}

func NewGRPCHandler(store *service.Storefront, logger zerolog.Logger) *GRPCHandler {
	return &GRPCHandler{store: store, logger: logger}
}

func (h *GRPCHandler) ListProducts(ctx context.Context, req *pb.ListProductsRequest) (*pb.ListProductsResponse, error) {
	f, err := parseFilter(req.GetQuery(), req.Category, req.Brand, req.Price, req.Sort)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.ListProductsResponse{Products: h.store.Products(f)}, nil
}

func (h *GRPCHandler) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	user, err := h.store.Auth.Login(ctx, domain.Credentials{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.LoginResponse{User: user}, nil
}

func (h *GRPCHandler) AddToCart(ctx context.Context, req *pb.AddToCartRequest) (*pb.AddToCartResponse, error) {
	item, err := h.store.AddToCart(ctx, service.AddToCartRequest{
		ProductID: req.GetProductId(),
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  int(req.GetQuantity()),
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.AddToCartResponse{Item: item}, nil
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *pb.GetCartRequest) (*pb.GetCartResponse, error) {
	summary, err := h.store.CartSummary()
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.GetCartResponse{
		Items:      summary.Items,
		Count:      int32(summary.Count),
		Subtotal:   summary.Quote.Subtotal.StringFixed(2),
		Shipping:   summary.Quote.Shipping.StringFixed(2),
		Tax:        summary.Quote.Tax.StringFixed(2),
		GrandTotal: summary.Quote.GrandTotal.StringFixed(2),
	}, nil
}

func (h *GRPCHandler) PlaceOrder(ctx context.Context, req *pb.PlaceOrderRequest) (*pb.PlaceOrderResponse, error) {
	order, err := h.store.PlaceOrder(ctx, req.ShippingAddress, req.Payment)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.PlaceOrderResponse{Order: order}, nil
}

func (h *GRPCHandler) ListOrders(ctx context.Context, req *pb.ListOrdersRequest) (*pb.ListOrdersResponse, error) {
	orders, err := h.store.MyOrders()
	if err != nil {
		return nil, h.toStatus(err)
	}
	return &pb.ListOrdersResponse{Orders: orders}, nil
}

func (h *GRPCHandler) toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	switch statusFor(err) {
	case http.StatusBadRequest:
		return status.Error(codes.InvalidArgument, err.Error())
	case http.StatusNotFound:
		return status.Error(codes.NotFound, err.Error())
	}
	h.logger.Error().Err(err).Msg("rpc failed")
	return status.Error(codes.Internal, "internal error")
}
