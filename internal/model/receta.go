package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estrategias de consumo de un grupo de insumos sustituibles.
const (
	StrategyPriority   = "PRIORITY"
	StrategyLowestCost = "LOWEST_COST"
)

// InsumoGrupo is a named pool of substitutable ingredients. The strategy
// decides which concrete producto is the cost source: PRIORITY takes the
// active item with the lowest prioridad (nulls last), LOWEST_COST the one
// with the minimum precioCosto.
type InsumoGrupo struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"uniqueIndex;not null"`
	ConsumoStrategy string    `gorm:"type:varchar(20);not null;default:'PRIORITY'"`
	Activo          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []InsumoGrupoItem `gorm:"foreignKey:GrupoID"`
}

func (InsumoGrupo) TableName() string { return "insumo_grupos" }

// InsumoGrupoItem links a producto into a grupo. All active items of one
// grupo must share the producto's unidadBase.
type InsumoGrupoItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GrupoID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grupo_producto"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grupo_producto"`
	Prioridad  *int
	Activo     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (InsumoGrupoItem) TableName() string { return "insumo_grupo_items" }

// Receta links a COMIDA product to one insumo grupo with the quantity
// consumed per yield unit. Unique per (comida, grupo).
type Receta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComidaID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_comida_grupo"`
	GrupoID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_comida_grupo"`
	CantidadBase decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Comida *Producto    `gorm:"foreignKey:ComidaID"`
	Grupo  *InsumoGrupo `gorm:"foreignKey:GrupoID"`
}

func (Receta) TableName() string { return "recetas" }
