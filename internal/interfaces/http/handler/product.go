package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/rahmimuaz/Evolexxlk/internal/application/catalog"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/rahmimuaz/Evolexxlk/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// maxImageSize bounds a single uploaded product image
const maxImageSize = 10 << 20 // 10 MiB

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	authn          gin.HandlerFunc
	admin          gin.HandlerFunc
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, authn, admin gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		authn:          authn,
		admin:          admin,
	}
}

// RegisterRoutes registers catalog routes. The search and stock routes
// must precede /:id so they are not captured as IDs.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/products")
	{
		group.GET("", h.List)
		group.GET("/search", h.Search)
		group.GET("/category/:category", h.ListByCategory)
		group.GET("/low-stock", h.authn, h.admin, h.ListLowStock)
		group.GET("/out-of-stock", h.authn, h.admin, h.ListOutOfStock)
		group.GET("/:id", h.Get)
		group.POST("", h.authn, h.admin, h.Create)
		group.PUT("/:id", h.authn, h.admin, h.Update)
		group.DELETE("/:id", h.authn, h.admin, h.Delete)
		group.GET("/:id/reviews", h.ListReviews)
		group.POST("/:id/reviews", h.authn, h.AddReview)
	}
}

// List returns all products
func (h *ProductHandler) List(c *gin.Context) {
	filter := shared.DefaultFilter()
	if search := c.Query("search"); search != "" {
		filter.Search = search
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 {
		filter.PageSize = pageSize
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Search finds products by name
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListByCategory returns products in a category
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.productService.ListByCategory(c.Request.Context(), c.Param("category"), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListLowStock returns products in the low-stock band
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// ListOutOfStock returns products with no stock left
func (h *ProductHandler) ListOutOfStock(c *gin.Context) {
	products, err := h.productService.ListOutOfStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a single product with its reviews
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a product from a multipart form
func (h *ProductHandler) Create(c *gin.Context) {
	base, images, err := h.parseProductForm(c, "images")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req := catalogapp.CreateProductRequest{
		Name:            base.name,
		Category:        base.category,
		Price:           base.price,
		Description:     base.description,
		LongDescription: base.longDescription,
		Stock:           base.stock,
		Details:         base.details,
		WarrantyPeriod:  base.warrantyPeriod,
		DiscountPrice:   base.discountPrice,
		Images:          images,
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update updates a product from a multipart form. existingImages lists
// the stored image URLs to keep; newImages carries fresh uploads.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	base, newImages, err := h.parseProductForm(c, "newImages")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req := catalogapp.UpdateProductRequest{
		Name:            base.name,
		Category:        base.category,
		Price:           base.price,
		Description:     base.description,
		LongDescription: base.longDescription,
		Stock:           base.stock,
		Details:         base.details,
		WarrantyPeriod:  base.warrantyPeriod,
		DiscountPrice:   base.discountPrice,
		ExistingImages:  parseStringList(c, "existingImages"),
		NewImages:       newImages,
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Product deleted successfully"})
}

// ListReviews returns a product's reviews
func (h *ProductHandler) ListReviews(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	reviews, err := h.productService.GetReviews(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// AddReview posts a review for a product
func (h *ProductHandler) AddReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var reviewerID *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		reviewerID = &userID
	}

	review, err := h.productService.AddReview(c.Request.Context(), id, reviewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// productFormFields holds the scalar multipart fields shared by create
// and update
type productFormFields struct {
	name            string
	category        string
	price           decimal.Decimal
	description     string
	longDescription string
	stock           int
	details         map[string]string
	warrantyPeriod  string
	discountPrice   *decimal.Decimal
}

func (h *ProductHandler) parseProductForm(c *gin.Context, imageField string) (*productFormFields, []catalogapp.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}

	fields := &productFormFields{
		name:            c.PostForm("name"),
		category:        c.PostForm("category"),
		description:     c.PostForm("description"),
		longDescription: c.PostForm("longDescription"),
		warrantyPeriod:  c.PostForm("warrantyPeriod"),
		details:         map[string]string{},
	}

	fields.price, err = decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		return nil, nil, shared.NewDomainError("INVALID_PRICE", "Invalid price")
	}
	if stockStr := c.PostForm("stock"); stockStr != "" {
		fields.stock, err = strconv.Atoi(stockStr)
		if err != nil {
			return nil, nil, shared.NewDomainError("INVALID_STOCK", "Invalid stock value")
		}
	}
	if discountStr := c.PostForm("discountPrice"); discountStr != "" {
		discount, err := decimal.NewFromString(discountStr)
		if err != nil {
			return nil, nil, shared.NewDomainError("INVALID_PRICE", "Invalid discount price")
		}
		fields.discountPrice = &discount
	}
	if detailsStr := c.PostForm("details"); detailsStr != "" {
		if err := json.Unmarshal([]byte(detailsStr), &fields.details); err != nil {
			return nil, nil, shared.NewDomainError("INVALID_DETAILS", "Details must be a JSON object of strings")
		}
	}

	images, err := readImageUploads(form.File[imageField])
	if err != nil {
		return nil, nil, err
	}
	return fields, images, nil
}

func readImageUploads(files []*multipart.FileHeader) ([]catalogapp.ImageUpload, error) {
	uploads := make([]catalogapp.ImageUpload, 0, len(files))
	for _, header := range files {
		if header.Size > maxImageSize {
			return nil, shared.NewDomainError("INVALID_IMAGES", "Image exceeds the 10MB size limit")
		}
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, catalogapp.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

// parseStringList reads a form field that may be a JSON array or a
// repeated form value
func parseStringList(c *gin.Context, field string) []string {
	values := c.PostFormArray(field)
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}
