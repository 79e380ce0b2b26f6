package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/entity"
)

func (h *ValidationHandler) ProcessValidation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req entity.ProcessValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	batchDate, err := validateProcessValidationRequest(req)
	if err != nil {
		log.Warnf("[ProcessValidation] Invalid input: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	res, err := h.Usecase.ProcessValidationInit(batchDate, strings.TrimSpace(req.Operator))
	if err != nil {
		log.Errorf("[ProcessValidation] failed to register run: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Failed to process validation",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(APIResponse{
		Status: "success",
		Data:   res,
	})
}

func validateProcessValidationRequest(req entity.ProcessValidationRequest) (time.Time, error) {
	if strings.TrimSpace(req.BatchDate) == "" {
		return time.Time{}, errors.New("batch date must be provided")
	}
	batchDate, err := time.Parse(consts.BatchDateLayout, strings.TrimSpace(req.BatchDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid batch date format: %v", err)
	}
	if strings.TrimSpace(req.Operator) == "" {
		return time.Time{}, errors.New("operator must be specified")
	}
	return batchDate, nil
}
