package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// imagePrefix is the storage key prefix for product images
const imagePrefix = "products"

// ProductService handles catalog business operations
type ProductService struct {
	products catalog.ProductRepository
	storage  ObjectStorageService
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, storage ObjectStorageService, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		storage:  storage,
		logger:   logger.Named("catalog"),
	}
}

// Create creates a product, storing its uploaded images first
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if len(req.Images) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGES", "Product must have at least one image")
	}
	if len(req.Images) > catalog.MaxImages {
		return nil, shared.NewDomainError("INVALID_IMAGES", "Product cannot have more than 5 images")
	}

	imageURLs, err := s.storeImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(
		req.Name,
		catalog.Category(req.Category),
		req.Price,
		req.Description,
		imageURLs,
		req.Details,
	)
	if err != nil {
		s.removeImages(ctx, imageURLs)
		return nil, err
	}

	product.SetLongDescription(req.LongDescription)
	product.SetWarrantyPeriod(req.WarrantyPeriod)
	if err := product.SetStock(req.Stock); err != nil {
		s.removeImages(ctx, imageURLs)
		return nil, err
	}
	if req.DiscountPrice != nil {
		if err := product.SetDiscountPrice(*req.DiscountPrice); err != nil {
			s.removeImages(ctx, imageURLs)
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		s.removeImages(ctx, imageURLs)
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.String("category", product.Category.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product. Stored images not listed in ExistingImages
// are removed from object storage; new uploads are appended.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	newURLs, err := s.storeImages(ctx, req.NewImages)
	if err != nil {
		return nil, err
	}
	updatedImages := append(append([]string{}, req.ExistingImages...), newURLs...)

	if len(updatedImages) < catalog.MinImages || len(updatedImages) > catalog.MaxImages {
		s.removeImages(ctx, newURLs)
		return nil, shared.NewDomainError("INVALID_IMAGES", "Product must have 1-5 images")
	}

	if err := product.Update(req.Name, catalog.Category(req.Category), req.Price, req.Description, req.Details); err != nil {
		s.removeImages(ctx, newURLs)
		return nil, err
	}

	// Drop stored images the caller no longer references
	kept := make(map[string]bool, len(updatedImages))
	for _, img := range updatedImages {
		kept[img] = true
	}
	var removed []string
	for _, img := range product.Images {
		if !kept[img] {
			removed = append(removed, img)
		}
	}
	s.removeImages(ctx, removed)

	if err := product.SetImages(updatedImages); err != nil {
		return nil, err
	}
	product.SetLongDescription(req.LongDescription)
	product.SetWarrantyPeriod(req.WarrantyPeriod)
	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}
	if req.DiscountPrice != nil {
		if err := product.SetDiscountPrice(*req.DiscountPrice); err != nil {
			return nil, err
		}
	} else {
		product.ClearDiscountPrice()
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product along with its stored images and reviews
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return err
	}

	s.removeImages(ctx, product.Images)

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("name", product.Name))
	return nil
}

// GetByID retrieves a product with its reviews
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves all products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListByCategory retrieves products in a category
func (s *ProductService) ListByCategory(ctx context.Context, category string, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.products.FindByCategory(ctx, catalog.Category(category), filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Search finds products whose name matches the query
func (s *ProductService) Search(ctx context.Context, query string) ([]ProductResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ProductResponse{}, nil
	}
	products, err := s.products.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListLowStock retrieves products in the low-stock band (1-4 units)
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListOutOfStock retrieves products with no stock left
func (s *ProductService) ListOutOfStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// AddReview appends a review to a product. userID may be nil for
// reviews posted before the reviewer signed in.
func (s *ProductService) AddReview(ctx context.Context, productID uuid.UUID, userID *uuid.UUID, req AddReviewRequest) (*ReviewResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	review, err := catalog.NewReview(productID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.products.AddReview(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}

// GetReviews retrieves all reviews for a product
func (s *ProductService) GetReviews(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	reviews, err := s.products.FindReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}

// storeImages uploads each image under a fresh key and returns the
// public URLs in upload order
func (s *ProductService) storeImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		ext := strings.ToLower(path.Ext(img.Filename))
		key := fmt.Sprintf("%s/%s%s", imagePrefix, uuid.New(), ext)
		if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
			s.removeImages(ctx, urls)
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		urls = append(urls, s.storage.PublicURL(key))
	}
	return urls, nil
}

// removeImages deletes stored images best-effort; a leaked object is
// preferable to a failed product operation
func (s *ProductService) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		key := imageKeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete product image",
				zap.String("image", url),
				zap.Error(err))
		}
	}
}

// imageKeyFromURL recovers the storage key from a stored image URL
func imageKeyFromURL(url string) string {
	idx := strings.LastIndex(url, imagePrefix+"/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}
