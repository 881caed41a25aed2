package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ImageUpload carries one uploaded image through the service layer
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateProductRequest represents a request to create a product.
// Images come from the multipart form, not the JSON body.
type CreateProductRequest struct {
	Name            string
	Category        string
	Price           decimal.Decimal
	Description     string
	LongDescription string
	Stock           int
	Details         map[string]string
	WarrantyPeriod  string
	DiscountPrice   *decimal.Decimal
	Images          []ImageUpload
}

// UpdateProductRequest represents a request to update a product.
// ExistingImages lists the stored image URLs to keep; NewImages are
// appended after upload. Stored images absent from ExistingImages are
// removed from object storage.
type UpdateProductRequest struct {
	Name            string
	Category        string
	Price           decimal.Decimal
	Description     string
	LongDescription string
	Stock           int
	Details         map[string]string
	WarrantyPeriod  string
	DiscountPrice   *decimal.Decimal
	ExistingImages  []string
	NewImages       []ImageUpload
}

// AddReviewRequest represents a request to review a product
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"date"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID            `json:"id"`
	Name            string               `json:"name"`
	Category        string               `json:"category"`
	Description     string               `json:"description"`
	LongDescription string               `json:"longDescription,omitempty"`
	Price           decimal.Decimal      `json:"price"`
	DiscountPrice   *decimal.Decimal     `json:"discountPrice,omitempty"`
	Stock           int                  `json:"stock"`
	Images          []string             `json:"images"`
	Details         map[string]string    `json:"details"`
	WarrantyPeriod  string               `json:"warrantyPeriod"`
	Reviews         []ReviewResponse     `json:"reviews,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ToReviewResponse maps a review to its API representation
func ToReviewResponse(review *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// ToReviewResponses maps a review slice to API representations
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	return out
}

// ToProductResponse maps a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Category:        product.Category.String(),
		Description:     product.Description,
		LongDescription: product.LongDescription,
		Price:           product.Price,
		Stock:           product.Stock,
		Images:          product.Images,
		Details:         product.Details,
		WarrantyPeriod:  product.WarrantyPeriod,
		Reviews:         ToReviewResponses(product.Reviews),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.DiscountPrice.Valid {
		price := product.DiscountPrice.Decimal
		resp.DiscountPrice = &price
	}
	return resp
}

// ToProductResponses maps a product slice to API representations
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
