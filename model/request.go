package model

// SignupRequest defines the payload for provisioning a new admin user.
// Registration is gated by a pre-shared secret code.
type SignupRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	SecretCode string `json:"secretCode" validate:"required"`
}

// LoginRequest defines the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateProductRequest is the JSON product-creation variant: the media has
// already been uploaded (via the upload-url flow) and blobUrl points at it.
type CreateProductRequest struct {
	ProductName     string `json:"productName" validate:"required"`
	ProductCategory string `json:"productCategory" validate:"required"`
	FileName        string `json:"fileName" validate:"required"`
	BlobURL         string `json:"blobUrl" validate:"required"`
	IsFeatured      bool   `json:"isFeatured"`
	IsVideo         bool   `json:"isVideo"`
}

// DeleteProductRequest identifies the product to remove.
type DeleteProductRequest struct {
	ID int `json:"id" validate:"required"`
}

// UploadURLRequest asks for a presigned upload target for a new media file.
type UploadURLRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType" validate:"required"`
}
