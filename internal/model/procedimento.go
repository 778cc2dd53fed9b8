package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Procedimento is a billable exam/procedure with three price points.
// Which one applies to a given recebimento depends on its "tabela"
// selector (see internal/pricing).
type Procedimento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome            string          `gorm:"type:varchar(150);not null;uniqueIndex"`
	ValorCartao     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorParticular decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValorOtica      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}
