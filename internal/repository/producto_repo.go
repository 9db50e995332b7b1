package repository

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// so unit tests can swap in an in-memory stub.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	ListBajoStock(ctx context.Context, umbral int) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error

	// Used inside transactions; callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Producto) error
	FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error)
	UpdateStockTx(tx *gorm.DB, id uint, delta int) error
	UpdateDatosCompraTx(tx *gorm.DB, id uint, c *model.Compra) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("LOWER(nombre) = LOWER(?)", nombre).First(&p).Error
	return &p, err
}

// List applies the name search in SQL; the stock level filter is applied by
// the service because the thresholds live in package inventario.
func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Search != "" {
		q = q.Where(nombreContiene, patronContiene(filter.Search))
	}
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ListBajoStock(ctx context.Context, umbral int) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("cantidad <= ?", umbral).
		Order("cantidad ASC, nombre ASC").
		Find(&productos).Error
	return productos, err
}

// Update writes the catalog fields only. Cantidad is left out of the SET list:
// stock moves through UpdateStockTx alone.
func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return actualizarCatalogo(r.db.WithContext(ctx), p).Error
}

func actualizarCatalogo(db *gorm.DB, p *model.Producto) *gorm.DB {
	return db.Model(p).
		Select("nombre", "precio", "precio_venta", "presentacion", "unidades", "updated_at").
		Updates(p)
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return tx.Create(p).Error
}

// FindByIDForUpdateTx locks the row until the transaction ends.
func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) UpdateStockTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", delta)).Error
}

// UpdateDatosCompraTx copies prices and packaging of a purchase lot onto the product.
func (r *productoRepo) UpdateDatosCompraTx(tx *gorm.DB, id uint, c *model.Compra) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).Updates(map[string]interface{}{
		"precio":       c.Precio,
		"precio_venta": c.PrecioVenta,
		"presentacion": c.Presentacion,
		"unidades":     c.Unidades,
	}).Error
}
