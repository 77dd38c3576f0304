package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "pricegate/contexts/commerce/catalog-service/domain/errors"
	"pricegate/contexts/commerce/catalog-service/ports"
)

type productModel struct {
	ProductID   string    `gorm:"column:product_id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	PricePence  int64     `gorm:"column:price_pence;not null"`
	Description string    `gorm:"column:description"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (productModel) TableName() string {
	return "catalog_products"
}

func (m productModel) toEntity() ports.Product {
	return ports.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		PricePence:  m.PricePence,
		Description: m.Description,
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func productModelFromEntity(product ports.Product) productModel {
	return productModel{
		ProductID:   strings.TrimSpace(product.ProductID),
		Name:        product.Name,
		PricePence:  product.PricePence,
		Description: product.Description,
		UpdatedAt:   product.UpdatedAt.UTC(),
	}
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the catalog schema when it does not exist yet.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productModel{})
}

func (r *Repository) ListProducts(ctx context.Context) ([]ports.Product, error) {
	var rows []productModel
	if err := r.db.WithContext(ctx).Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ports.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID string) (ports.Product, bool, error) {
	var row productModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, false, nil
		}
		return ports.Product{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpsertProduct(ctx context.Context, product ports.Product) error {
	row := productModelFromEntity(product)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price_pence", "description", "updated_at"}),
		}).
		Create(&row).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
