package handler

import (
	usecase "github.com/radhian/order-validation-system/usecase/validation"
)

type ValidationHandler struct {
	Usecase usecase.ValidationUsecase
}

func NewValidationHandler(uc usecase.ValidationUsecase) *ValidationHandler {
	return &ValidationHandler{Usecase: uc}
}

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
