package controllers

import (
	"github.com/gorilla/mux"
	"github.com/radhian/order-validation-system/handler"
)

func RegisterValidationRoutes(router *mux.Router, h *handler.ValidationHandler) {
	router.HandleFunc("/process_validation", h.ProcessValidation).Methods("POST")
	router.HandleFunc("/get_result", h.GetResult).Methods("GET")
}
