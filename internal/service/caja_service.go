package service

import (
	"context"
	"errors"
	"time"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaService interface {
	AbrirCaja(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	CajaActual(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error)
	CerrarCaja(ctx context.Context, usuarioID uuid.UUID) (*dto.CierreCajaResponse, error)
	ListarHistoriales(ctx context.Context, usuarioID *uuid.UUID) ([]dto.SesionCajaResponse, error)
	ObtenerSnapshot(ctx context.Context, historialID uuid.UUID) ([]dto.StockSesionResponse, error)

	// HistorialAbierto returns the caller's open session or a 409.
	HistorialAbierto(ctx context.Context, usuarioID uuid.UUID) (*model.HistorialCaja, error)
}

type cajaService struct {
	repo          repository.CajaRepository
	stockRepo     repository.StockRepository
	ubicacionRepo repository.UbicacionRepository
	productoRepo  repository.ProductoRepository
}

func NewCajaService(
	repo repository.CajaRepository,
	stockRepo repository.StockRepository,
	ubicacionRepo repository.UbicacionRepository,
	productoRepo repository.ProductoRepository,
) CajaService {
	return &cajaService{
		repo:          repo,
		stockRepo:     stockRepo,
		ubicacionRepo: ubicacionRepo,
		productoRepo:  productoRepo,
	}
}

func (s *cajaService) AbrirCaja(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if req.MontoInicial.IsNegative() {
		return nil, apierror.BadRequest("monto_inicial no puede ser negativo")
	}

	if _, err := s.repo.FindHistorialAbierto(ctx, usuarioID); err == nil {
		return nil, apierror.Conflict("el usuario ya tiene una caja abierta")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sala, err := s.ubicacionRepo.FindByTipo(ctx, model.UbicacionSalaVenta)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	stockSala, err := s.stockRepo.ListStockByUbicacion(ctx, sala.ID)
	if err != nil {
		return nil, err
	}
	enSala := make(map[uuid.UUID]int, len(stockSala))
	for _, row := range stockSala {
		enSala[row.ProductoID] = row.Cantidad
	}

	historial := &model.HistorialCaja{
		UsuarioID:     usuarioID,
		MontoInicial:  req.MontoInicial,
		FechaApertura: time.Now(),
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateHistorialTx(tx, historial); err != nil {
			return err
		}
		if err := s.repo.CreateCajaTx(tx, &model.Caja{
			HistorialID: historial.ID,
			Estado:      model.CajaAbierta,
		}); err != nil {
			return err
		}
		// Snapshot every active product, in one bulk insert. Products
		// without a sales-floor row open at zero so the closing
		// reconciliation still covers them.
		snapshot := make([]model.StockSesionCaja, 0, len(productos))
		for _, p := range productos {
			snapshot = append(snapshot, model.StockSesionCaja{
				HistorialID:  historial.ID,
				ProductoID:   p.ID,
				StockInicial: enSala[p.ID],
			})
		}
		return s.repo.CreateSnapshotTx(tx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	resp := historialToResponse(historial)
	return &resp, nil
}

// CajaActual returns nil without error when the user has no open session;
// the handler serializes that as a null body.
func (s *cajaService) CajaActual(ctx context.Context, usuarioID uuid.UUID) (*dto.SesionCajaResponse, error) {
	h, err := s.repo.FindHistorialAbierto(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := historialToResponse(h)
	return &resp, nil
}

func (s *cajaService) HistorialAbierto(ctx context.Context, usuarioID uuid.UUID) (*model.HistorialCaja, error) {
	h, err := s.repo.FindHistorialAbierto(ctx, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflict("el usuario no tiene una caja abierta")
		}
		return nil, err
	}
	return h, nil
}

func (s *cajaService) CerrarCaja(ctx context.Context, usuarioID uuid.UUID) (*dto.CierreCajaResponse, error) {
	sala, err := s.ubicacionRepo.FindByTipo(ctx, model.UbicacionSalaVenta)
	if err != nil {
		return nil, err
	}

	var historial *model.HistorialCaja
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		h, err := s.repo.FindHistorialAbiertoForUpdateTx(tx, usuarioID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.Conflict("el usuario no tiene una caja abierta")
			}
			return err
		}

		now := time.Now()
		h.FechaCierre = &now
		if err := s.repo.UpdateHistorialTx(tx, h); err != nil {
			return err
		}
		if err := s.repo.CerrarCajaTx(tx, h.ID); err != nil {
			return err
		}

		// Stamp the closing sales-floor quantity on every snapshot row,
		// reading through the same transaction.
		snapshot, err := s.repo.ListSnapshotTx(tx, h.ID)
		if err != nil {
			return err
		}
		for _, row := range snapshot {
			final := 0
			if stock, err := s.stockRepo.FindStockForUpdateTx(tx, row.ProductoID, sala.ID); err == nil {
				final = stock.Cantidad
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := s.repo.UpdateSnapshotFinalTx(tx, h.ID, row.ProductoID, final); err != nil {
				return err
			}
		}

		historial = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	stock, err := s.ObtenerSnapshot(ctx, historial.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CierreCajaResponse{
		Sesion: historialToResponse(historial),
		Stock:  stock,
	}, nil
}

func (s *cajaService) ListarHistoriales(ctx context.Context, usuarioID *uuid.UUID) ([]dto.SesionCajaResponse, error) {
	hs, err := s.repo.ListHistoriales(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SesionCajaResponse, 0, len(hs))
	for i := range hs {
		out = append(out, historialToResponse(&hs[i]))
	}
	return out, nil
}

func (s *cajaService) ObtenerSnapshot(ctx context.Context, historialID uuid.UUID) ([]dto.StockSesionResponse, error) {
	rows, err := s.repo.ListSnapshot(ctx, historialID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockSesionResponse, 0, len(rows))
	for _, row := range rows {
		nombre := ""
		if row.Producto != nil {
			nombre = row.Producto.Nombre
		}
		out = append(out, dto.StockSesionResponse{
			ProductoID:   row.ProductoID.String(),
			Producto:     nombre,
			StockInicial: row.StockInicial,
			StockFinal:   row.StockFinal,
		})
	}
	return out, nil
}

func historialToResponse(h *model.HistorialCaja) dto.SesionCajaResponse {
	resp := dto.SesionCajaResponse{
		ID:            h.ID.String(),
		UsuarioID:     h.UsuarioID.String(),
		MontoInicial:  h.MontoInicial,
		TotalVentas:   h.TotalVentas,
		TotalEfectivo: h.TotalEfectivo,
		TotalTarjeta:  h.TotalTarjeta,
		FechaApertura: h.FechaApertura.Format(time.RFC3339),
		Abierta:       h.FechaCierre == nil,
	}
	if h.Usuario != nil {
		resp.Usuario = h.Usuario.Nombre
	}
	if h.FechaCierre != nil {
		cierre := h.FechaCierre.Format(time.RFC3339)
		resp.FechaCierre = &cierre
	}
	return resp
}
