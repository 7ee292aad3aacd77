package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-core/api/responses"
	"github.com/angelmondragon/storefront-core/api/validators"
	cartsvc "github.com/angelmondragon/storefront-core/internal/cart"
	"github.com/angelmondragon/storefront-core/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/angelmondragon/storefront-core/pkg/logger"
)

type createPromoRequest struct {
	Code            string          `json:"code" validate:"required,max=32"`
	Type            string          `json:"type" validate:"required,oneof=percentage fixed"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MinimumSubtotal decimal.Decimal `json:"minimum_subtotal"`
}

func (r createPromoRequest) toPromo() (cartsvc.PromoCode, error) {
	promoType, err := enums.ParsePromoType(r.Type)
	if err != nil {
		return cartsvc.PromoCode{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promo type")
	}
	return cartsvc.PromoCode{
		Code:            r.Code,
		Type:            promoType,
		DiscountValue:   r.DiscountValue,
		MinimumSubtotal: r.MinimumSubtotal,
	}, nil
}

func AdminListPromos(svc cartsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"items": svc.Promos()})
	}
}

func AdminCreatePromo(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPromoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		promo, err := req.toPromo()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreatePromo(r.Context(), promo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminReloadPromos(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ReloadPromos(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": svc.Promos()})
	}
}
