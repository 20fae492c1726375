package controllers

import (
	"net/http"

	"florist-api-io/api/internal/helpers"
	"florist-api-io/api/pkg/bouquet"
	"florist-api-io/api/pkg/models"
	"florist-api-io/api/pkg/services"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type BouquetController struct {
	bouquetService services.BouquetService
}

func InitBouquetController(bouquetService services.BouquetService) *BouquetController {
	return &BouquetController{
		bouquetService: bouquetService,
	}
}

type bouquetAction func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error)

// handle runs action against the session's wizard and answers with the
// resulting view.
func (bc *BouquetController) handle(message string, action bouquetAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		view, ok, err := action(ctrl, c)
		if !ok {
			return
		}
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusOK, message, view)
	}
}

func (bc *BouquetController) GetBouquet() gin.HandlerFunc {
	return bc.handle("success", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		view, err := bc.bouquetService.GetBouquet(ctrl.Ctx, ctrl.SessionID)
		return view, true, err
	})
}

func (bc *BouquetController) SetFlowerQuantity() gin.HandlerFunc {
	return bc.handle("Bouquet updated", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return models.BouquetView{}, false, nil
		}
		var req models.BouquetQuantityRequest
		if !BindJSONAndValidate(c, &req) {
			return models.BouquetView{}, false, nil
		}
		view, err := bc.bouquetService.SetFlowerQuantity(ctrl.Ctx, ctrl.SessionID, id, *req.Quantity)
		return view, true, err
	})
}

func (bc *BouquetController) SelectWrapper() gin.HandlerFunc {
	return bc.handle("Bouquet updated", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return models.BouquetView{}, false, nil
		}
		view, err := bc.bouquetService.SelectWrapper(ctrl.Ctx, ctrl.SessionID, id)
		return view, true, err
	})
}

func (bc *BouquetController) ClearWrapper() gin.HandlerFunc {
	return bc.handle("Bouquet updated", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		view, err := bc.bouquetService.ClearWrapper(ctrl.Ctx, ctrl.SessionID)
		return view, true, err
	})
}

func (bc *BouquetController) ToggleAddon() gin.HandlerFunc {
	return bc.handle("Bouquet updated", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		id, err := helpers.GetIntParam(c, "id")
		if err != nil {
			return models.BouquetView{}, false, nil
		}
		view, err := bc.bouquetService.ToggleAddon(ctrl.Ctx, ctrl.SessionID, id)
		return view, true, err
	})
}

func (bc *BouquetController) GoToStep() gin.HandlerFunc {
	return bc.handle("success", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		step, err := helpers.GetIntParam(c, "step")
		if err != nil {
			return models.BouquetView{}, false, nil
		}
		view, err := bc.bouquetService.GoToStep(ctrl.Ctx, ctrl.SessionID, bouquet.Step(step))
		return view, true, err
	})
}

func (bc *BouquetController) Next() gin.HandlerFunc {
	return bc.handle("success", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		view, err := bc.bouquetService.Next(ctrl.Ctx, ctrl.SessionID)
		return view, true, err
	})
}

func (bc *BouquetController) Back() gin.HandlerFunc {
	return bc.handle("success", func(ctrl *ControllerContext, c *gin.Context) (models.BouquetView, bool, error) {
		view, err := bc.bouquetService.Back(ctrl.Ctx, ctrl.SessionID)
		return view, true, err
	})
}

// Finalize adds the bouquet to the cart as one line.
func (bc *BouquetController) Finalize() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl, ok := SetupControllerContext(c)
		if !ok {
			return
		}
		defer ctrl.Cleanup()

		res, err := bc.bouquetService.Finalize(ctrl.Ctx, ctrl.SessionID)
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		util.HandleSuccess(c, http.StatusCreated, "Bouquet added to cart", res)
	}
}
