package handler

import (
	"errors"
	"net/http"
	"strconv"

	"jewel-studio-api/common"
	"jewel-studio-api/model"
	"jewel-studio-api/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// listResponse is the flat listing payload: one page of products plus
// pagination metadata.
type listResponse struct {
	*service.ProductPage
	Success bool `json:"success"`
}

// List serves the public catalog: filtered by category and/or featured,
// paginated, newest first. At least one filter is required.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))
	filter := model.ProductFilter{
		Category: model.Category(params.Get("category")),
		Featured: params.Get("featured") == "true",
	}

	result, err := h.catalog.List(r.Context(), filter, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilterRequired):
			return common.NewAppError(http.StatusBadRequest, "Category or featured parameter is required", nil)
		case errors.Is(err, service.ErrInvalidCategory):
			return common.NewAppError(http.StatusBadRequest, "Invalid product category", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	writeJSON(w, http.StatusOK, listResponse{
		ProductPage: result,
		Success:     true,
	})
	return nil
}
