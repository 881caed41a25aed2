package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category represents a product category. The category drives which
// detail attributes are mandatory for the product.
type Category string

const (
	CategoryMobilePhone       Category = "Mobile Phone"
	CategoryMobileAccessories Category = "Mobile Accessories"
	CategoryPreownedPhones    Category = "Preowned Phones"
	CategoryLaptops           Category = "Laptops"
)

// requiredDetailFields maps each category to the detail attributes a
// product of that category must carry.
var requiredDetailFields = map[Category][]string{
	CategoryMobilePhone:       {"brand", "model", "storage", "ram", "color", "screenSize", "batteryCapacity", "processor", "camera", "operatingSystem"},
	CategoryMobileAccessories: {"brand", "type", "compatibility", "color", "material"},
	CategoryPreownedPhones:    {"brand", "model", "condition", "storage", "ram", "color", "batteryHealth", "warranty"},
	CategoryLaptops:           {"brand", "model", "processor", "ram", "storage", "display", "graphics", "operatingSystem"},
}

// IsValid checks if the category is one of the recognized values
func (c Category) IsValid() bool {
	_, ok := requiredDetailFields[c]
	return ok
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// RequiredDetailFields returns the detail attributes mandatory for the category
func (c Category) RequiredDetailFields() []string {
	return requiredDetailFields[c]
}

// ImageList stores an ordered list of image URIs as a JSON column
type ImageList []string

// Value implements driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for ImageList")
}

// DetailMap stores category-specific attributes as a JSON column
type DetailMap map[string]string

// Value implements driver.Valuer
func (m DetailMap) Value() (driver.Value, error) {
	if m == nil {
		m = DetailMap{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *DetailMap) Scan(value interface{}) error {
	if value == nil {
		*m = DetailMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported type for DetailMap")
}

// Review is a customer review attached to a product
type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Rating    int        `gorm:"not null" json:"rating"`
	Comment   string     `gorm:"type:text" json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "product_reviews"
}

// NewReview creates a review for a product
func NewReview(productID uuid.UUID, userID *uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return &Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}

// Product represents a storefront product. It is the aggregate root
// for catalog operations: stock decrements, review appends and updates.
type Product struct {
	shared.BaseEntity
	Name            string              `gorm:"type:varchar(200);not null"`
	Category        Category            `gorm:"type:varchar(50);not null;index"`
	Description     string              `gorm:"type:text;not null"`
	LongDescription string              `gorm:"type:text"`
	Price           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	DiscountPrice   decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	Stock           int                 `gorm:"not null;default:0"`
	Images          ImageList           `gorm:"type:jsonb;not null"`
	Details         DetailMap           `gorm:"type:jsonb;not null"`
	WarrantyPeriod  string              `gorm:"type:varchar(50);not null;default:'No Warranty'"`
	Reviews         []Review            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// MinImages and MaxImages bound the product image list
const (
	MinImages = 1
	MaxImages = 5
)

// LowStockCeiling is the exclusive upper bound of the low-stock band.
// Stock in (0, LowStockCeiling) triggers an operator alert.
const LowStockCeiling = 5

// NewProduct creates a new product, validating the category-specific
// detail attributes and the image list bounds
func NewProduct(name string, category Category, price decimal.Decimal, description string, images []string, details map[string]string) (*Product, error) {
	if name == "" || description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing required fields: name, category, price, and description are required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category: %s", category))
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if len(images) < MinImages {
		return nil, shared.NewDomainError("INVALID_IMAGES", "Product must have at least one image")
	}
	if len(images) > MaxImages {
		return nil, shared.NewDomainError("INVALID_IMAGES", "Product cannot have more than 5 images")
	}
	if err := validateDetails(category, details); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Category:       category,
		Description:    description,
		Price:          price,
		Images:         ImageList(images),
		Details:        DetailMap(details),
		WarrantyPeriod: "No Warranty",
	}, nil
}

// SetLongDescription sets the long-form description
func (p *Product) SetLongDescription(text string) {
	p.LongDescription = text
	p.Touch()
}

// SetWarrantyPeriod sets the warranty period, defaulting when empty
func (p *Product) SetWarrantyPeriod(period string) {
	if period == "" {
		period = "No Warranty"
	}
	p.WarrantyPeriod = period
	p.Touch()
}

// SetDiscountPrice sets the optional discounted price
func (p *Product) SetDiscountPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discount price cannot be negative")
	}
	p.DiscountPrice = decimal.NewNullDecimal(price)
	p.Touch()
	return nil
}

// ClearDiscountPrice removes the discounted price
func (p *Product) ClearDiscountPrice() {
	p.DiscountPrice = decimal.NullDecimal{}
	p.Touch()
}

// SetStock replaces the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	return nil
}

// SetImages replaces the image list, enforcing the 1-5 bound
func (p *Product) SetImages(images []string) error {
	if len(images) < MinImages || len(images) > MaxImages {
		return shared.NewDomainError("INVALID_IMAGES", "Product must have 1-5 images")
	}
	p.Images = ImageList(images)
	p.Touch()
	return nil
}

// Update replaces the mutable product fields
func (p *Product) Update(name string, category Category, price decimal.Decimal, description string, details map[string]string) error {
	if name == "" || description == "" {
		return shared.NewDomainError("INVALID_INPUT", "Missing required fields: name, category, price, and description are required")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown category: %s", category))
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if err := validateDetails(category, details); err != nil {
		return err
	}

	p.Name = name
	p.Category = category
	p.Price = price
	p.Description = description
	p.Details = DetailMap(details)
	p.Touch()
	return nil
}

// HasStock reports whether the product can satisfy the requested quantity
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// IsLowStock reports whether the stock is in the alerting band (1-4)
func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock < LowStockCeiling
}

// IsOutOfStock reports whether the product has no stock left
func (p *Product) IsOutOfStock() bool {
	return p.Stock == 0
}

// EffectivePrice returns the discount price when present, the price otherwise
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

func validateDetails(category Category, details map[string]string) error {
	var missing []string
	for _, field := range category.RequiredDetailFields() {
		if details[field] == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return shared.NewDomainError("MISSING_DETAILS",
			fmt.Sprintf("Missing required fields for %s: %s", category, strings.Join(missing, ", ")))
	}
	return nil
}
