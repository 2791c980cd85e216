package service

import (
	"context"
	"errors"
	"sort"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecetaService interface {
	CrearGrupo(ctx context.Context, req dto.CrearGrupoRequest) (*dto.GrupoResponse, error)
	ObtenerGrupo(ctx context.Context, id uuid.UUID) (*dto.GrupoResponse, error)
	ListarGrupos(ctx context.Context) ([]dto.GrupoResponse, error)
	ActualizarGrupo(ctx context.Context, id uuid.UUID, req dto.ActualizarGrupoRequest) (*dto.GrupoResponse, error)

	AgregarGrupoItem(ctx context.Context, grupoID uuid.UUID, req dto.AgregarGrupoItemRequest) (*dto.GrupoResponse, error)
	ActualizarGrupoItem(ctx context.Context, grupoID, itemID uuid.UUID, req dto.ActualizarGrupoItemRequest) (*dto.GrupoResponse, error)
	EliminarGrupoItem(ctx context.Context, grupoID, itemID uuid.UUID) error

	DefinirReceta(ctx context.Context, comidaID uuid.UUID, req dto.DefinirRecetaRequest) (*dto.RecetaResponse, error)
	Costos(ctx context.Context, comidaID uuid.UUID) (*dto.RecetaResponse, error)
	PosiblesMasivo(ctx context.Context) ([]dto.PosiblesResponse, error)

	// RecomputarCostosPorProducto walks every grupo containing the producto
	// and recomputes each affected comida's precioCosto.
	RecomputarCostosPorProducto(ctx context.Context, productoID uuid.UUID) error
}

type recetaService struct {
	repo          repository.RecetaRepository
	productoRepo  repository.ProductoRepository
	stockRepo     repository.StockRepository
	ubicacionRepo repository.UbicacionRepository
}

func NewRecetaService(
	repo repository.RecetaRepository,
	productoRepo repository.ProductoRepository,
	stockRepo repository.StockRepository,
	ubicacionRepo repository.UbicacionRepository,
) RecetaService {
	return &recetaService{repo: repo, productoRepo: productoRepo, stockRepo: stockRepo, ubicacionRepo: ubicacionRepo}
}

// ── Resolución de estrategias ────────────────────────────────────────────────

// ResolverInsumo picks the cost-source item of a grupo. PRIORITY takes the
// active item with the lowest prioridad, nulls last, breaking ties by
// created_at then id. LOWEST_COST takes the active item with the minimum
// precioCosto, same tie-break. Returns nil when no active item qualifies.
func ResolverInsumo(g *model.InsumoGrupo) *model.InsumoGrupoItem {
	activos := make([]*model.InsumoGrupoItem, 0, len(g.Items))
	for i := range g.Items {
		it := &g.Items[i]
		if it.Activo && it.Producto != nil && it.Producto.Activo {
			activos = append(activos, it)
		}
	}
	if len(activos) == 0 {
		return nil
	}

	tieBreak := func(a, b *model.InsumoGrupoItem) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	}

	switch g.ConsumoStrategy {
	case model.StrategyLowestCost:
		sort.SliceStable(activos, func(i, j int) bool {
			ci, cj := activos[i].Producto.PrecioCosto, activos[j].Producto.PrecioCosto
			if !ci.Equal(cj) {
				return ci.LessThan(cj)
			}
			return tieBreak(activos[i], activos[j])
		})
	default: // PRIORITY
		sort.SliceStable(activos, func(i, j int) bool {
			pi, pj := activos[i].Prioridad, activos[j].Prioridad
			switch {
			case pi != nil && pj != nil && *pi != *pj:
				return *pi < *pj
			case pi != nil && pj == nil:
				return true
			case pi == nil && pj != nil:
				return false
			}
			return tieBreak(activos[i], activos[j])
		})
	}
	return activos[0]
}

// ComidasAfectadas derives which comidas need recomputation when grupos
// change. Pure over its inputs so propagation is testable in isolation.
func ComidasAfectadas(recetas []model.Receta, grupoIDs []uuid.UUID) []uuid.UUID {
	grupoSet := make(map[uuid.UUID]struct{}, len(grupoIDs))
	for _, id := range grupoIDs {
		grupoSet[id] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, r := range recetas {
		if _, ok := grupoSet[r.GrupoID]; !ok {
			continue
		}
		if _, ok := seen[r.ComidaID]; ok {
			continue
		}
		seen[r.ComidaID] = struct{}{}
		out = append(out, r.ComidaID)
	}
	return out
}

// ── Grupos ───────────────────────────────────────────────────────────────────

func (s *recetaService) CrearGrupo(ctx context.Context, req dto.CrearGrupoRequest) (*dto.GrupoResponse, error) {
	if _, err := s.repo.FindGrupoByNombre(ctx, req.Nombre); err == nil {
		return nil, apierror.Conflict("ya existe un grupo con ese nombre")
	}
	strategy := req.ConsumoStrategy
	if strategy == "" {
		strategy = model.StrategyPriority
	}
	g := &model.InsumoGrupo{
		Nombre:          req.Nombre,
		ConsumoStrategy: strategy,
		Activo:          true,
	}
	if err := s.repo.CreateGrupo(ctx, g); err != nil {
		return nil, err
	}
	return s.ObtenerGrupo(ctx, g.ID)
}

func (s *recetaService) ObtenerGrupo(ctx context.Context, id uuid.UUID) (*dto.GrupoResponse, error) {
	g, err := s.findGrupo(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := grupoToResponse(g)
	return &resp, nil
}

func (s *recetaService) findGrupo(ctx context.Context, id uuid.UUID) (*model.InsumoGrupo, error) {
	g, err := s.repo.FindGrupoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("grupo no encontrado")
		}
		return nil, err
	}
	return g, nil
}

func (s *recetaService) ListarGrupos(ctx context.Context) ([]dto.GrupoResponse, error) {
	grupos, err := s.repo.ListGrupos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GrupoResponse, 0, len(grupos))
	for i := range grupos {
		out = append(out, grupoToResponse(&grupos[i]))
	}
	return out, nil
}

func (s *recetaService) ActualizarGrupo(ctx context.Context, id uuid.UUID, req dto.ActualizarGrupoRequest) (*dto.GrupoResponse, error) {
	g, err := s.findGrupo(ctx, id)
	if err != nil {
		return nil, err
	}

	recompute := false
	if req.Nombre != nil {
		g.Nombre = *req.Nombre
	}
	if req.ConsumoStrategy != nil && g.ConsumoStrategy != *req.ConsumoStrategy {
		g.ConsumoStrategy = *req.ConsumoStrategy
		recompute = true
	}
	if req.Activo != nil && g.Activo != *req.Activo {
		g.Activo = *req.Activo
		recompute = true
	}

	if err := s.repo.UpdateGrupo(ctx, g); err != nil {
		return nil, err
	}
	if recompute {
		if err := s.recomputarPorGrupos(ctx, []uuid.UUID{g.ID}); err != nil {
			return nil, err
		}
	}
	return s.ObtenerGrupo(ctx, id)
}

// ── Items de grupo ───────────────────────────────────────────────────────────

func (s *recetaService) AgregarGrupoItem(ctx context.Context, grupoID uuid.UUID, req dto.AgregarGrupoItemRequest) (*dto.GrupoResponse, error) {
	g, err := s.findGrupo(ctx, grupoID)
	if err != nil {
		return nil, err
	}

	p, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, err
	}
	if p.Tipo != model.TipoInsumo {
		return nil, apierror.BadRequest("solo productos INSUMO pueden integrar un grupo")
	}

	// All active items of a grupo must share the same unidadBase.
	for i := range g.Items {
		it := &g.Items[i]
		if it.Activo && it.Producto != nil && it.Producto.UnidadBase != p.UnidadBase {
			return nil, apierror.BadRequest("unidad base " + p.UnidadBase + " no coincide con la del grupo (" + it.Producto.UnidadBase + ")")
		}
		if it.ProductoID == p.ID {
			return nil, apierror.Conflict("el producto ya integra el grupo")
		}
	}

	item := &model.InsumoGrupoItem{
		GrupoID:    grupoID,
		ProductoID: p.ID,
		Prioridad:  req.Prioridad,
		Activo:     true,
	}
	if err := s.repo.CreateGrupoItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.recomputarPorGrupos(ctx, []uuid.UUID{grupoID}); err != nil {
		return nil, err
	}
	return s.ObtenerGrupo(ctx, grupoID)
}

func (s *recetaService) ActualizarGrupoItem(ctx context.Context, grupoID, itemID uuid.UUID, req dto.ActualizarGrupoItemRequest) (*dto.GrupoResponse, error) {
	item, err := s.repo.FindGrupoItemByID(ctx, itemID)
	if err != nil || item.GrupoID != grupoID {
		return nil, apierror.NotFound("item de grupo no encontrado")
	}

	if req.Prioridad != nil {
		item.Prioridad = req.Prioridad
	}
	if req.Activo != nil {
		item.Activo = *req.Activo
	}
	if err := s.repo.UpdateGrupoItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.recomputarPorGrupos(ctx, []uuid.UUID{grupoID}); err != nil {
		return nil, err
	}
	return s.ObtenerGrupo(ctx, grupoID)
}

func (s *recetaService) EliminarGrupoItem(ctx context.Context, grupoID, itemID uuid.UUID) error {
	item, err := s.repo.FindGrupoItemByID(ctx, itemID)
	if err != nil || item.GrupoID != grupoID {
		return apierror.NotFound("item de grupo no encontrado")
	}
	if err := s.repo.DeleteGrupoItem(ctx, itemID); err != nil {
		return err
	}
	return s.recomputarPorGrupos(ctx, []uuid.UUID{grupoID})
}

// ── Recetas y costos ─────────────────────────────────────────────────────────

func (s *recetaService) DefinirReceta(ctx context.Context, comidaID uuid.UUID, req dto.DefinirRecetaRequest) (*dto.RecetaResponse, error) {
	comida, err := s.findComida(ctx, comidaID)
	if err != nil {
		return nil, err
	}

	grupoIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, it := range req.Items {
		if !it.CantidadBase.IsPositive() {
			return nil, apierror.BadRequest("cantidad_base debe ser positiva")
		}
		grupoIDs = append(grupoIDs, it.GrupoID)
	}
	grupos, err := s.repo.FindGruposByIDs(ctx, grupoIDs)
	if err != nil {
		return nil, err
	}
	if len(grupos) != len(grupoIDs) {
		return nil, apierror.NotFound("algun grupo de la receta no existe")
	}

	items := make([]model.Receta, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.Receta{
			ComidaID:     comidaID,
			GrupoID:      it.GrupoID,
			CantidadBase: it.CantidadBase,
		})
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.ReplaceRecetaTx(tx, comidaID, items)
	})
	if err != nil {
		return nil, err
	}

	if err := s.recomputarComida(ctx, comida.ID); err != nil {
		return nil, err
	}
	return s.Costos(ctx, comidaID)
}

func (s *recetaService) findComida(ctx context.Context, comidaID uuid.UUID) (*model.Producto, error) {
	comida, err := s.productoRepo.FindByID(ctx, comidaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("comida no encontrada")
		}
		return nil, err
	}
	if comida.Tipo != model.TipoComida {
		return nil, apierror.BadRequest("el producto " + comida.Nombre + " no es una comida")
	}
	return comida, nil
}

// computeCostoComida sums, per recipe line, the resolved insumo's unit cost
// times cantidadBase. A line whose grupo is inactive or resolves to nothing
// contributes zero.
func computeCostoComida(recetas []model.Receta) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recetas {
		if r.Grupo == nil || !r.Grupo.Activo {
			continue
		}
		insumo := ResolverInsumo(r.Grupo)
		if insumo == nil {
			continue
		}
		total = total.Add(insumo.Producto.PrecioCosto.Mul(r.CantidadBase))
	}
	return total
}

func (s *recetaService) recomputarComida(ctx context.Context, comidaID uuid.UUID) error {
	recetas, err := s.repo.ListRecetasByComida(ctx, comidaID)
	if err != nil {
		return err
	}
	costo := computeCostoComida(recetas)
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.productoRepo.UpdatePrecioCostoTx(tx, comidaID, costo)
	})
}

func (s *recetaService) recomputarPorGrupos(ctx context.Context, grupoIDs []uuid.UUID) error {
	for _, grupoID := range grupoIDs {
		recetas, err := s.repo.ListRecetasByGrupo(ctx, grupoID)
		if err != nil {
			return err
		}
		for _, comidaID := range ComidasAfectadas(recetas, []uuid.UUID{grupoID}) {
			if err := s.recomputarComida(ctx, comidaID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *recetaService) RecomputarCostosPorProducto(ctx context.Context, productoID uuid.UUID) error {
	grupos, err := s.repo.ListGruposByProducto(ctx, productoID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(grupos))
	for _, g := range grupos {
		ids = append(ids, g.ID)
	}
	return s.recomputarPorGrupos(ctx, ids)
}

func (s *recetaService) Costos(ctx context.Context, comidaID uuid.UUID) (*dto.RecetaResponse, error) {
	comida, err := s.findComida(ctx, comidaID)
	if err != nil {
		return nil, err
	}
	recetas, err := s.repo.ListRecetasByComida(ctx, comidaID)
	if err != nil {
		return nil, err
	}

	resp := dto.RecetaResponse{
		ComidaID:    comida.ID.String(),
		Comida:      comida.Nombre,
		Rendimiento: comida.Rendimiento,
	}
	total := decimal.Zero
	for _, r := range recetas {
		item := dto.RecetaItemResponse{
			GrupoID:      r.GrupoID.String(),
			CantidadBase: r.CantidadBase,
		}
		if r.Grupo != nil {
			item.Grupo = r.Grupo.Nombre
			if r.Grupo.Activo {
				if insumo := ResolverInsumo(r.Grupo); insumo != nil {
					item.CostoUnitario = insumo.Producto.PrecioCosto
					total = total.Add(insumo.Producto.PrecioCosto.Mul(r.CantidadBase))
				}
			}
		}
		resp.Items = append(resp.Items, item)
	}
	resp.CostoTotal = total
	if comida.Rendimiento > 0 {
		porcion := total.Div(decimal.NewFromInt(int64(comida.Rendimiento)))
		resp.CostoPorcion = &porcion
	}
	return &resp, nil
}

// PosiblesMasivo computes, per COMIDA, the maximum portions makeable from
// current SALA_VENTA stock: recipe lines are grouped by resolved insumo and
// the answer is the minimum floor(stock / per-portion requirement). A recipe
// referencing an inactive grupo, or a line with non-positive quantity,
// short-circuits that comida to 0.
func (s *recetaService) PosiblesMasivo(ctx context.Context) ([]dto.PosiblesResponse, error) {
	comidas, err := s.productoRepo.ListByTipo(ctx, model.TipoComida)
	if err != nil {
		return nil, err
	}
	if len(comidas) == 0 {
		return []dto.PosiblesResponse{}, nil
	}

	sala, err := s.ubicacionRepo.FindByTipo(ctx, model.UbicacionSalaVenta)
	if err != nil {
		return nil, err
	}

	comidaIDs := make([]uuid.UUID, 0, len(comidas))
	for _, c := range comidas {
		comidaIDs = append(comidaIDs, c.ID)
	}
	recetas, err := s.repo.ListRecetasByComidas(ctx, comidaIDs)
	if err != nil {
		return nil, err
	}
	porComida := make(map[uuid.UUID][]model.Receta)
	for _, r := range recetas {
		porComida[r.ComidaID] = append(porComida[r.ComidaID], r)
	}

	out := make([]dto.PosiblesResponse, 0, len(comidas))
	for _, c := range comidas {
		porciones, err := s.posiblesDeComida(ctx, porComida[c.ID], sala.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.PosiblesResponse{
			ComidaID:  c.ID.String(),
			Comida:    c.Nombre,
			Porciones: porciones,
		})
	}
	return out, nil
}

func (s *recetaService) posiblesDeComida(ctx context.Context, recetas []model.Receta, salaID uuid.UUID) (int, error) {
	if len(recetas) == 0 {
		return 0, nil
	}

	// Group per-portion requirements by resolved insumo: multiple lines can
	// resolve to the same product.
	requerido := make(map[uuid.UUID]decimal.Decimal)
	for _, r := range recetas {
		if r.Grupo == nil || !r.Grupo.Activo {
			return 0, nil
		}
		if !r.CantidadBase.IsPositive() {
			return 0, nil
		}
		insumo := ResolverInsumo(r.Grupo)
		if insumo == nil {
			return 0, nil
		}
		requerido[insumo.ProductoID] = requerido[insumo.ProductoID].Add(r.CantidadBase)
	}

	minimo := -1
	for productoID, porPorcion := range requerido {
		disponible := decimal.Zero
		stock, err := s.stockRepo.FindStock(ctx, productoID, salaID)
		if err == nil {
			disponible = decimal.NewFromInt(int64(stock.Cantidad))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		porciones := int(disponible.Div(porPorcion).IntPart())
		if minimo == -1 || porciones < minimo {
			minimo = porciones
		}
	}
	if minimo < 0 {
		return 0, nil
	}
	return minimo, nil
}

func grupoToResponse(g *model.InsumoGrupo) dto.GrupoResponse {
	resp := dto.GrupoResponse{
		ID:              g.ID.String(),
		Nombre:          g.Nombre,
		ConsumoStrategy: g.ConsumoStrategy,
		Activo:          g.Activo,
	}
	for _, it := range g.Items {
		item := dto.GrupoItemResponse{
			ID:         it.ID.String(),
			ProductoID: it.ProductoID.String(),
			Prioridad:  it.Prioridad,
			Activo:     it.Activo,
		}
		if it.Producto != nil {
			item.Producto = it.Producto.Nombre
			item.UnidadBase = it.Producto.UnidadBase
			item.PrecioCosto = it.Producto.PrecioCosto
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
