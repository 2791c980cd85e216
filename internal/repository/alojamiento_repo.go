package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlojamientoRepository covers the hostel layout (floors, rooms, beds,
// amenities), guests, assignments, bookings and accommodation charges.
type AlojamientoRepository interface {
	CreatePiso(ctx context.Context, p *model.PisoZona) error
	ListPisos(ctx context.Context) ([]model.PisoZona, error)
	FindPisoByID(ctx context.Context, id uuid.UUID) (*model.PisoZona, error)

	CreateHabitacion(ctx context.Context, h *model.Habitacion) error
	FindHabitacionByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error)
	ListHabitacionesByPiso(ctx context.Context, pisoID uuid.UUID) ([]model.Habitacion, error)
	UpdateHabitacion(ctx context.Context, h *model.Habitacion) error
	ReplaceComodidades(ctx context.Context, h *model.Habitacion, comodidades []model.Comodidad) error
	DesactivarHabitacion(ctx context.Context, id uuid.UUID) error

	CreateCama(ctx context.Context, c *model.Cama) error
	FindCamaByID(ctx context.Context, id uuid.UUID) (*model.Cama, error)
	DeleteCama(ctx context.Context, id uuid.UUID) error

	CreateComodidad(ctx context.Context, c *model.Comodidad) error
	ListComodidades(ctx context.Context) ([]model.Comodidad, error)
	FindComodidadesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Comodidad, error)

	CreateInventarioHabitacion(ctx context.Context, i *model.InventarioHabitacion) error
	ListInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID) ([]model.InventarioHabitacion, error)
	DeleteInventarioHabitacion(ctx context.Context, id uuid.UUID) error

	CreateHuesped(ctx context.Context, h *model.Huesped) error
	FindHuespedByID(ctx context.Context, id uuid.UUID) (*model.Huesped, error)
	FindHuespedByDocumento(ctx context.Context, documento string) (*model.Huesped, error)
	ListHuespedes(ctx context.Context, search string) ([]model.Huesped, error)
	UpdateHuesped(ctx context.Context, h *model.Huesped) error

	CreateAsignacion(ctx context.Context, a *model.AsignacionHabitacion) error
	FindAsignacionActivaByCama(ctx context.Context, camaID uuid.UUID) (*model.AsignacionHabitacion, error)
	FindAsignacionByID(ctx context.Context, id uuid.UUID) (*model.AsignacionHabitacion, error)
	ListAsignacionesActivas(ctx context.Context) ([]model.AsignacionHabitacion, error)
	UpdateAsignacion(ctx context.Context, a *model.AsignacionHabitacion) error

	CreateReserva(ctx context.Context, rsv *model.ReservaHabitacion) error
	FindReservaByID(ctx context.Context, id uuid.UUID) (*model.ReservaHabitacion, error)
	// ListReservasSolapadas returns non-cancelled bookings of the room whose
	// [inicio, fin) range intersects the given one.
	ListReservasSolapadas(ctx context.Context, habitacionID uuid.UUID, inicio, fin interface{}) ([]model.ReservaHabitacion, error)
	ListReservas(ctx context.Context, habitacionID *uuid.UUID, estado string) ([]model.ReservaHabitacion, error)
	UpdateReserva(ctx context.Context, rsv *model.ReservaHabitacion) error

	CreateVentaAlojamientoTx(tx *gorm.DB, v *model.VentaAlojamiento) error
	ListVentasAlojamiento(ctx context.Context, historialID *uuid.UUID) ([]model.VentaAlojamiento, error)

	DB() *gorm.DB
}

type alojamientoRepo struct{ db *gorm.DB }

func NewAlojamientoRepository(db *gorm.DB) AlojamientoRepository { return &alojamientoRepo{db: db} }

func (r *alojamientoRepo) DB() *gorm.DB { return r.db }

func (r *alojamientoRepo) CreatePiso(ctx context.Context, p *model.PisoZona) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *alojamientoRepo) ListPisos(ctx context.Context) ([]model.PisoZona, error) {
	var pisos []model.PisoZona
	err := r.db.WithContext(ctx).Order("orden ASC, nombre ASC").Find(&pisos).Error
	return pisos, err
}

func (r *alojamientoRepo) FindPisoByID(ctx context.Context, id uuid.UUID) (*model.PisoZona, error) {
	var p model.PisoZona
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *alojamientoRepo) CreateHabitacion(ctx context.Context, h *model.Habitacion) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *alojamientoRepo) FindHabitacionByID(ctx context.Context, id uuid.UUID) (*model.Habitacion, error) {
	var h model.Habitacion
	err := r.db.WithContext(ctx).
		Preload("Camas").Preload("Comodidades").
		First(&h, id).Error
	return &h, err
}

func (r *alojamientoRepo) ListHabitacionesByPiso(ctx context.Context, pisoID uuid.UUID) ([]model.Habitacion, error) {
	var habitaciones []model.Habitacion
	err := r.db.WithContext(ctx).
		Preload("Camas").Preload("Comodidades").
		Where("piso_id = ? AND activa = true", pisoID).
		Order("nombre ASC").
		Find(&habitaciones).Error
	return habitaciones, err
}

func (r *alojamientoRepo) UpdateHabitacion(ctx context.Context, h *model.Habitacion) error {
	return r.db.WithContext(ctx).Omit("Camas", "Comodidades").Save(h).Error
}

func (r *alojamientoRepo) ReplaceComodidades(ctx context.Context, h *model.Habitacion, comodidades []model.Comodidad) error {
	return r.db.Model(h).Association("Comodidades").Replace(comodidades)
}

func (r *alojamientoRepo) DesactivarHabitacion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Habitacion{}).Where("id = ?", id).Update("activa", false).Error
}

func (r *alojamientoRepo) CreateCama(ctx context.Context, c *model.Cama) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *alojamientoRepo) FindCamaByID(ctx context.Context, id uuid.UUID) (*model.Cama, error) {
	var c model.Cama
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *alojamientoRepo) DeleteCama(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cama{}, id).Error
}

func (r *alojamientoRepo) CreateComodidad(ctx context.Context, c *model.Comodidad) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *alojamientoRepo) ListComodidades(ctx context.Context) ([]model.Comodidad, error) {
	var comodidades []model.Comodidad
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&comodidades).Error
	return comodidades, err
}

func (r *alojamientoRepo) FindComodidadesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Comodidad, error) {
	var comodidades []model.Comodidad
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&comodidades).Error
	return comodidades, err
}

func (r *alojamientoRepo) CreateInventarioHabitacion(ctx context.Context, i *model.InventarioHabitacion) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *alojamientoRepo) ListInventarioHabitacion(ctx context.Context, habitacionID uuid.UUID) ([]model.InventarioHabitacion, error) {
	var items []model.InventarioHabitacion
	err := r.db.WithContext(ctx).Where("habitacion_id = ?", habitacionID).Find(&items).Error
	return items, err
}

func (r *alojamientoRepo) DeleteInventarioHabitacion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.InventarioHabitacion{}, id).Error
}

func (r *alojamientoRepo) CreateHuesped(ctx context.Context, h *model.Huesped) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *alojamientoRepo) FindHuespedByID(ctx context.Context, id uuid.UUID) (*model.Huesped, error) {
	var h model.Huesped
	err := r.db.WithContext(ctx).First(&h, id).Error
	return &h, err
}

func (r *alojamientoRepo) FindHuespedByDocumento(ctx context.Context, documento string) (*model.Huesped, error) {
	var h model.Huesped
	err := r.db.WithContext(ctx).Where("documento = ?", documento).First(&h).Error
	return &h, err
}

func (r *alojamientoRepo) ListHuespedes(ctx context.Context, search string) ([]model.Huesped, error) {
	var huespedes []model.Huesped
	q := r.db.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("nombre ILIKE ? OR documento ILIKE ?", like, like)
	}
	err := q.Order("nombre ASC").Find(&huespedes).Error
	return huespedes, err
}

func (r *alojamientoRepo) UpdateHuesped(ctx context.Context, h *model.Huesped) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *alojamientoRepo) CreateAsignacion(ctx context.Context, a *model.AsignacionHabitacion) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alojamientoRepo) FindAsignacionActivaByCama(ctx context.Context, camaID uuid.UUID) (*model.AsignacionHabitacion, error) {
	var a model.AsignacionHabitacion
	err := r.db.WithContext(ctx).
		Where("cama_id = ? AND activa = true", camaID).
		First(&a).Error
	return &a, err
}

func (r *alojamientoRepo) FindAsignacionByID(ctx context.Context, id uuid.UUID) (*model.AsignacionHabitacion, error) {
	var a model.AsignacionHabitacion
	err := r.db.WithContext(ctx).Preload("Cama").Preload("Huesped").First(&a, id).Error
	return &a, err
}

func (r *alojamientoRepo) ListAsignacionesActivas(ctx context.Context) ([]model.AsignacionHabitacion, error) {
	var as []model.AsignacionHabitacion
	err := r.db.WithContext(ctx).Preload("Cama").Preload("Huesped").
		Where("activa = true").
		Order("fecha_inicio ASC").
		Find(&as).Error
	return as, err
}

func (r *alojamientoRepo) UpdateAsignacion(ctx context.Context, a *model.AsignacionHabitacion) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *alojamientoRepo) CreateReserva(ctx context.Context, rsv *model.ReservaHabitacion) error {
	return r.db.WithContext(ctx).Create(rsv).Error
}

func (r *alojamientoRepo) FindReservaByID(ctx context.Context, id uuid.UUID) (*model.ReservaHabitacion, error) {
	var rsv model.ReservaHabitacion
	err := r.db.WithContext(ctx).Preload("Habitacion").Preload("Huesped").First(&rsv, id).Error
	return &rsv, err
}

func (r *alojamientoRepo) ListReservasSolapadas(ctx context.Context, habitacionID uuid.UUID, inicio, fin interface{}) ([]model.ReservaHabitacion, error) {
	var reservas []model.ReservaHabitacion
	err := r.db.WithContext(ctx).
		Where("habitacion_id = ? AND estado <> ? AND fecha_inicio < ? AND fecha_fin > ?",
			habitacionID, model.ReservaCancelada, fin, inicio).
		Find(&reservas).Error
	return reservas, err
}

func (r *alojamientoRepo) ListReservas(ctx context.Context, habitacionID *uuid.UUID, estado string) ([]model.ReservaHabitacion, error) {
	var reservas []model.ReservaHabitacion
	q := r.db.WithContext(ctx).Preload("Habitacion").Preload("Huesped")
	if habitacionID != nil {
		q = q.Where("habitacion_id = ?", *habitacionID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Order("fecha_inicio ASC").Find(&reservas).Error
	return reservas, err
}

func (r *alojamientoRepo) UpdateReserva(ctx context.Context, rsv *model.ReservaHabitacion) error {
	return r.db.WithContext(ctx).Save(rsv).Error
}

func (r *alojamientoRepo) CreateVentaAlojamientoTx(tx *gorm.DB, v *model.VentaAlojamiento) error {
	return tx.Create(v).Error
}

func (r *alojamientoRepo) ListVentasAlojamiento(ctx context.Context, historialID *uuid.UUID) ([]model.VentaAlojamiento, error) {
	var ventas []model.VentaAlojamiento
	q := r.db.WithContext(ctx).Preload("Huesped")
	if historialID != nil {
		q = q.Where("historial_id = ?", *historialID)
	}
	err := q.Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}
