package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eskimo/internal/carrito"
	"eskimo/internal/dto"
	"eskimo/internal/infra"
	"eskimo/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	carritoKeyPrefix = "carrito:"
	// carritoTTL slides forward on every read or write.
	carritoTTL = 8 * time.Hour
)

// CarritoService keeps point-of-sale carts in Redis. Errors from package
// carrito are returned unwrapped.
type CarritoService interface {
	Abrir(ctx context.Context, req dto.AbrirCarritoRequest) (*dto.CarritoResponse, error)
	Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error)
	CambiarEmpleado(ctx context.Context, id string, empleadoID uint) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, id string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, id string, itemID int64) (*dto.CarritoResponse, error)
	Checkout(ctx context.Context, id string) ([]dto.VentaResponse, error)
	Descartar(ctx context.Context, id string) error
}

type carritoService struct {
	rdb          *redis.Client
	empleadoRepo repository.EmpleadoRepository
	productoRepo repository.ProductoRepository
	inventario   InventarioService
	ventas       VentaService
}

func NewCarritoService(
	rdb *redis.Client,
	empleadoRepo repository.EmpleadoRepository,
	productoRepo repository.ProductoRepository,
	inventario InventarioService,
	ventas VentaService,
) CarritoService {
	return &carritoService{
		rdb:          rdb,
		empleadoRepo: empleadoRepo,
		productoRepo: productoRepo,
		inventario:   inventario,
		ventas:       ventas,
	}
}

func (s *carritoService) Abrir(ctx context.Context, req dto.AbrirCarritoRequest) (*dto.CarritoResponse, error) {
	c := carrito.New(uuid.NewString())
	if err := s.asignar(ctx, c, req.EmpleadoID); err != nil {
		return nil, err
	}
	if err := s.guardar(ctx, c); err != nil {
		return nil, err
	}
	log.Info().Str("carrito", c.ID).Uint("empleado_id", c.EmpleadoID).Msg("carrito abierto")
	return carritoToResponse(c), nil
}

func (s *carritoService) Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Expire(ctx, carritoKeyPrefix+id, carritoTTL).Err(); err != nil {
		log.Warn().Err(err).Str("carrito", id).Msg("carrito: TTL refresh failed")
	}
	return carritoToResponse(c), nil
}

// CambiarEmpleado rebinds the cart. Refused while the cart holds items of
// another employee.
func (s *carritoService) CambiarEmpleado(ctx context.Context, id string, empleadoID uint) (*dto.CarritoResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.asignar(ctx, c, empleadoID); err != nil {
		return nil, err
	}
	if err := s.guardar(ctx, c); err != nil {
		return nil, err
	}
	return carritoToResponse(c), nil
}

func (s *carritoService) AgregarItem(ctx context.Context, id string, req dto.AgregarItemRequest) (*dto.CarritoResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.EmpleadoID == 0 {
		return nil, carrito.ErrSinEmpleado
	}
	p, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil {
		return nil, noEncontrado(err, "producto", req.ProductoID)
	}
	precio := p.PrecioVenta
	if req.PrecioVenta != nil {
		precio = *req.PrecioVenta
	}
	if _, err := c.Agregar(p.ID, p.Nombre, req.Cantidad, precio); err != nil {
		return nil, err
	}
	if err := s.guardar(ctx, c); err != nil {
		return nil, err
	}
	return carritoToResponse(c), nil
}

func (s *carritoService) QuitarItem(ctx context.Context, id string, itemID int64) (*dto.CarritoResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Quitar(itemID); err != nil {
		return nil, err
	}
	if err := s.guardar(ctx, c); err != nil {
		return nil, err
	}
	return carritoToResponse(c), nil
}

// Checkout registers one sale per cart line and deletes the cart. The sales
// service re-validates the employee inventory inside its transaction, so a
// stale snapshot cannot oversell.
func (s *carritoService) Checkout(ctx context.Context, id string) ([]dto.VentaResponse, error) {
	c, err := s.cargar(ctx, id)
	if err != nil {
		return nil, err
	}
	lineas, err := c.Ventas()
	if err != nil {
		return nil, err
	}

	req := make([]dto.VentaRequest, len(lineas))
	for i, l := range lineas {
		precio := l.PrecioVenta
		req[i] = dto.VentaRequest{
			ProductoID:  l.ProductoID,
			Producto:    l.Producto,
			EmpleadoID:  l.EmpleadoID,
			Empleado:    l.Empleado,
			Cantidad:    l.Cantidad,
			PrecioVenta: &precio,
		}
	}
	ventas, err := s.ventas.Registrar(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Del(ctx, carritoKeyPrefix+id).Err(); err != nil {
		log.Warn().Err(err).Str("carrito", id).Msg("carrito: delete after checkout failed")
	}
	log.Info().Str("carrito", id).Int("lineas", len(ventas)).Str("total", c.Total().StringFixed(2)).Msg("carrito cobrado")
	return ventas, nil
}

func (s *carritoService) Descartar(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, carritoKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("carrito %s %w", id, ErrNoEncontrado)
	}
	return nil
}

func (s *carritoService) asignar(ctx context.Context, c *carrito.Carrito, empleadoID uint) error {
	emp, err := s.empleadoRepo.FindByID(ctx, empleadoID)
	if err != nil {
		return noEncontrado(err, "empleado", empleadoID)
	}
	disponible, err := s.inventario.Disponible(ctx, emp.ID)
	if err != nil {
		return err
	}
	return c.AsignarEmpleado(emp.ID, emp.Nombre, disponible)
}

func (s *carritoService) cargar(ctx context.Context, id string) (*carrito.Carrito, error) {
	var c carrito.Carrito
	err := infra.GetJSON(ctx, s.rdb, carritoKeyPrefix+id, &c)
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("carrito %s %w", id, ErrNoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []carrito.Item{}
	}
	return &c, nil
}

func (s *carritoService) guardar(ctx context.Context, c *carrito.Carrito) error {
	return infra.SetJSON(ctx, s.rdb, carritoKeyPrefix+c.ID, c, carritoTTL)
}

func carritoToResponse(c *carrito.Carrito) *dto.CarritoResponse {
	return &dto.CarritoResponse{
		ID:         c.ID,
		EmpleadoID: c.EmpleadoID,
		Empleado:   c.Empleado,
		Items:      c.Items,
		Total:      c.Total(),
	}
}
