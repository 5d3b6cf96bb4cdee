package slots

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/dto/requests"
	"jadwalin-service/internal/pkg/exceptions"
	"jadwalin-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotController struct {
	Log         *zap.Logger
	SlotUsecase contracts.SlotUsecase
}

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase) *SlotController {
	return &SlotController{
		Log:         logger,
		SlotUsecase: slotUsecase,
	}
}

func (ctrl *SlotController) BookSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	request := new(requests.BookSlot)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.SlotUsecase.MarkSlotBooked(ctx, slotID, request.AppointmentID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookSlotSuccessMessage, response)
}

func (ctrl *SlotController) FreeSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, constvars.URLParamSlotID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.SlotUsecase.MarkSlotFree(ctx, slotID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FreeSlotSuccessMessage, response)
}
