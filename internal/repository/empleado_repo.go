package repository

import (
	"context"

	"eskimo/internal/model"

	"gorm.io/gorm"
)

type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByID(ctx context.Context, id uint) (*model.Empleado, error)
	List(ctx context.Context, search string) ([]model.Empleado, error)
	Update(ctx context.Context, e *model.Empleado) error
	SoftDelete(ctx context.Context, id uint) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) FindByID(ctx context.Context, id uint) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("activo = true").First(&e, id).Error
	return &e, err
}

func (r *empleadoRepo) List(ctx context.Context, search string) ([]model.Empleado, error) {
	var empleados []model.Empleado
	q := r.db.WithContext(ctx).Where("activo = true")
	if search != "" {
		q = q.Where(nombreContiene, patronContiene(search))
	}
	err := q.Order("nombre ASC").Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Empleado{}).
		Where("id = ? AND activo = true", id).Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
