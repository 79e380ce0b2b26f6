package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/gommon/log"
)

// GetResult returns one run with its file assets when log_id is given, and
// every run otherwise.
func (h *ValidationHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logIDStr := r.URL.Query().Get("log_id")
	if logIDStr == "" {
		results, err := h.Usecase.GetValidationResults()
		if err != nil {
			log.Errorf("[GetResult] failed to list runs: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(APIResponse{
				Status:  "error",
				Message: "Failed to get results",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(APIResponse{
			Status: "success",
			Data:   results,
		})
		return
	}

	logID, err := strconv.ParseInt(logIDStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "log_id must be a valid integer",
		})
		return
	}

	result, err := h.Usecase.GetValidationResult(logID)
	if err != nil {
		log.Errorf("[GetResult] log_id %d: %v", logID, err)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(APIResponse{
			Status:  "error",
			Message: "Failed to get result",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(APIResponse{
		Status: "success",
		Data:   result,
	})
}
