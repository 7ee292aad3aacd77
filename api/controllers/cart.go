package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-core/api/middleware"
	"github.com/angelmondragon/storefront-core/api/responses"
	"github.com/angelmondragon/storefront-core/api/validators"
	cartsvc "github.com/angelmondragon/storefront-core/internal/cart"
	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/angelmondragon/storefront-core/pkg/logger"
)

type addCartItemRequest struct {
	ProductID     string           `json:"product_id" validate:"required,max=128"`
	Name          string           `json:"name" validate:"required,max=256"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         string           `json:"image" validate:"max=1024"`
	MaxQuantity   int              `json:"max_quantity" validate:"required,min=1"`
	Color         string           `json:"color" validate:"max=64"`
	Size          string           `json:"size" validate:"max=64"`
	Quantity      int              `json:"quantity"`
}

func (r addCartItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		Product: cartsvc.Product{
			ID:            r.ProductID,
			Name:          validators.SanitizeString(r.Name, 256),
			Price:         r.Price,
			OriginalPrice: r.OriginalPrice,
			Image:         r.Image,
			MaxQuantity:   r.MaxQuantity,
		},
		Color:    r.Color,
		Size:     r.Size,
		Quantity: r.Quantity,
	}
}

type cartItemKeyRequest struct {
	ProductID string `json:"product_id" validate:"required,max=128"`
	Color     string `json:"color" validate:"max=64"`
	Size      string `json:"size" validate:"max=64"`
}

func (r cartItemKeyRequest) key() cartsvc.LineKey {
	return cartsvc.LineKey{ProductID: r.ProductID, Color: r.Color, Size: r.Size}
}

type updateCartItemRequest struct {
	cartItemKeyRequest
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Get(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAddItem adds a product variant and queues an "added to cart" toast when a
// notification hub is wired.
func CartAddItem(svc cartsvc.Service, hub NotificationQueues, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		input := req.toInput()
		view, err := svc.AddItem(r.Context(), sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		notify(r, hub, logg, sessionID, enums.NotificationKindSuccess, "Added to cart", input.Product.Name+" was added to your cart")
		responses.WriteSuccess(w, view)
	}
}

func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), req.key(), req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartItemKeyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), middleware.SessionIDFromContext(r.Context()), req.key())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartApplyPromo(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyPromoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ApplyPromo(r.Context(), middleware.SessionIDFromContext(r.Context()), req.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartRemovePromo(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.RemovePromo(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Clear(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
