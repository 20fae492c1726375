package controllers

import (
	"net/http"

	"florist-api-io/api/internal/helpers"
	"florist-api-io/api/pkg/services"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService services.CatalogService
}

func InitCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns a filtered, sorted and paged product list.
func (cc *CatalogController) ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := SetupControllerContextWithoutSession(c)
		defer ctrl.Cleanup()

		kind, err := helpers.GetProductKind(c)
		if err != nil {
			return
		}
		criteria, err := helpers.GetCatalogCriteria(c)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		pagination := helpers.GetPaginationArgs(c)

		products, count, err := cc.catalogService.ListProducts(ctrl.Ctx, kind, criteria, pagination)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		HandlePaginationAndResponse(c, products, count, pagination, "success")
	}
}

func (cc *CatalogController) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := SetupControllerContextWithoutSession(c)
		defer ctrl.Cleanup()

		kind, err := helpers.GetProductKind(c)
		if err != nil {
			return
		}
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return
		}

		product, err := cc.catalogService.GetProduct(ctrl.Ctx, kind, id)
		if err != nil {
			HandleServiceError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", product)
	}
}

// RefreshCatalog drops the cached products of a kind on every instance.
func (cc *CatalogController) RefreshCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := SetupControllerContextWithoutSession(c)
		defer ctrl.Cleanup()

		kind, err := helpers.GetProductKind(c)
		if err != nil {
			return
		}

		if err := cc.catalogService.Invalidate(ctrl.Ctx, kind); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Catalog cache cleared", kind)
	}
}

func (cc *CatalogController) GetBouquetOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := SetupControllerContextWithoutSession(c)
		defer ctrl.Cleanup()

		opts, err := cc.catalogService.BouquetOptions(ctrl.Ctx)
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "success", opts)
	}
}

func (cc *CatalogController) RefreshBouquetOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := SetupControllerContextWithoutSession(c)
		defer ctrl.Cleanup()

		if err := cc.catalogService.InvalidateBouquetOptions(ctrl.Ctx); err != nil {
			util.HandleError(c, http.StatusInternalServerError, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, "Bouquet options cache cleared", nil)
	}
}
