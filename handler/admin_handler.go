package handler

import (
	"errors"
	"net/http"
	"strings"

	"jewel-studio-api/common"
	"jewel-studio-api/logger"
	"jewel-studio-api/model"
	"jewel-studio-api/service"

	"github.com/sirupsen/logrus"
)

const maxUploadMemory = 32 << 20

// AdminHandler serves the bearer-protected product mutation endpoints.
type AdminHandler struct {
	products *service.ProductService
	storage  service.MediaStorage
}

func NewAdminHandler(products *service.ProductService, storage service.MediaStorage) *AdminHandler {
	return &AdminHandler{
		products: products,
		storage:  storage,
	}
}

// CreateProduct accepts both creation variants on one route: a JSON body
// referencing an already-uploaded blob, or a multipart form carrying the
// media file itself. Both resolve to the same creation contract.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) *common.AppError {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return h.createFromUpload(w, r)
	}
	return h.createFromJSON(w, r)
}

func (h *AdminHandler) createFromJSON(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateProductRequest
	if appErr := common.DecodeAndValidate(r, &req, "All fields are required"); appErr != nil {
		return appErr
	}

	product, err := h.products.Create(r.Context(), service.CreateProductInput{
		Name:       req.ProductName,
		Category:   model.Category(req.ProductCategory),
		FileName:   req.FileName,
		MediaURL:   req.BlobURL,
		IsVideo:    req.IsVideo,
		IsFeatured: req.IsFeatured,
	})
	if err != nil {
		return mapCreateError(err)
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Product added successfully",
		Data:    map[string]int{"productId": product.ID},
	})
	return nil
}

func (h *AdminHandler) createFromUpload(w http.ResponseWriter, r *http.Request) *common.AppError {
	if h.storage == nil {
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", errors.New("media storage not configured"))
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid file", nil)
	}

	name := r.FormValue("productName")
	category := r.FormValue("productCategory")
	isFeatured := r.FormValue("isFeatured") == "true"
	mediaType := r.FormValue("mediaType")

	file, header, err := r.FormFile("productMedia")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
	}
	defer file.Close()

	if name == "" || category == "" {
		return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
	}

	contentType := header.Header.Get("Content-Type")
	isVideo := mediaType == "video" || strings.HasPrefix(contentType, "video")
	fileName := service.RandomFileName(header.Filename)

	blobURL, err := h.storage.Upload(r.Context(), fileName, contentType, file)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Failed to upload file", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"file_name": fileName,
		"is_video":  isVideo,
	}).Info("Media file uploaded")

	product, err := h.products.Create(r.Context(), service.CreateProductInput{
		Name:       name,
		Category:   model.Category(category),
		FileName:   fileName,
		MediaURL:   blobURL,
		IsVideo:    isVideo,
		IsFeatured: isFeatured,
	})
	if err != nil {
		return mapCreateError(err)
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Product added successfully",
		Data:    map[string]int{"productId": product.ID},
	})
	return nil
}

// GenerateUploadURL issues a presigned PUT URL so the browser can upload
// media straight to object storage, plus the clean URL to store afterwards.
func (h *AdminHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) *common.AppError {
	if h.storage == nil {
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", errors.New("media storage not configured"))
	}

	var req model.UploadURLRequest
	if appErr := common.DecodeAndValidate(r, &req, "fileName and fileType are required"); appErr != nil {
		return appErr
	}

	fileName := service.RandomFileName(req.FileName)
	uploadURL, blobURL, err := h.storage.PresignPut(r.Context(), fileName)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Upload URL generated successfully",
		Data: map[string]string{
			"uploadUrl": uploadURL,
			"blobUrl":   blobURL,
			"fileName":  fileName,
		},
	})
	return nil
}

// DeleteProduct removes a product by id. Missing rows are a 404, repeat
// deletes included.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.DeleteProductRequest
	if appErr := common.DecodeAndValidate(r, &req, "Product ID is required"); appErr != nil {
		return appErr
	}

	if err := h.products.Delete(r.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return common.NewAppError(http.StatusNotFound, "Product not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
	return nil
}

func mapCreateError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrMissingProductFields):
		return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
	case errors.Is(err, service.ErrInvalidCategory):
		return common.NewAppError(http.StatusBadRequest, "Invalid product category", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}
