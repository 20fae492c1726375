package controllers

import (
	"net/http"

	"florist-api-io/api/internal/helpers"
	"florist-api-io/api/pkg/models"
	"florist-api-io/api/pkg/services"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService services.CartService
}

func InitCartController(cartService services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// GetCart returns the session's cart with its totals.
func (cc *CartController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		util.HandleSuccess(c, http.StatusOK, "success", cc.cartService.GetCart(ctrl.Ctx, ctrl.SessionID))
	}
}

// AddToCart adds a catalog product to one of the cart collections.
func (cc *CartController) AddToCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		category, err := helpers.GetCartCategory(c)
		if err != nil {
			return
		}

		var req models.CartLineRequest
		if !BindJSONAndValidate(c, &req) {
			return
		}

		summary, err := cc.cartService.AddProduct(ctrl.Ctx, ctrl.SessionID, category, req)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Item added to cart", summary)
	}
}

// UpdateQuantity overwrites a line's quantity; zero removes the line.
func (cc *CartController) UpdateQuantity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		category, err := helpers.GetCartCategory(c)
		if err != nil {
			return
		}
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return
		}

		var req models.CartQuantityRequest
		if !BindJSONAndValidate(c, &req) {
			return
		}

		summary := cc.cartService.SetQuantity(ctrl.Ctx, ctrl.SessionID, category, id, *req.Quantity)
		util.HandleSuccess(c, http.StatusOK, "Cart updated", summary)
	}
}

func (cc *CartController) RemoveLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		category, err := helpers.GetCartCategory(c)
		if err != nil {
			return
		}
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return
		}

		summary := cc.cartService.RemoveLine(ctrl.Ctx, ctrl.SessionID, category, id)
		util.HandleSuccess(c, http.StatusOK, "Item removed from cart", summary)
	}
}

func (cc *CartController) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		util.HandleSuccess(c, http.StatusOK, "Cart cleared", cc.cartService.ClearCart(ctrl.Ctx, ctrl.SessionID))
	}
}

// Panel opens, closes or toggles the cart panel.
func (cc *CartController) Panel(action services.PanelAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		summary, err := cc.cartService.SetPanel(ctrl.Ctx, ctrl.SessionID, action)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "success", summary)
	}
}
