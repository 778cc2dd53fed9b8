package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa is a per-(usuario, day) cash drawer. At most one exists per key,
// enforced by the composite unique index; concurrent opens resolve by the
// second insert failing. Lifecycle: open (AbertoEm) → closed (EncerradoEm
// set once, no reopen).
type Caixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_caixa_usuario_dia"`
	DataCaixa    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_caixa_usuario_dia"`
	SaldoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Obs          string
	AbertoEm     time.Time
	EncerradoEm  *time.Time

	Usuario Usuario `gorm:"foreignKey:UsuarioID"`
}

// Encerrado reports whether the drawer has been closed.
func (c *Caixa) Encerrado() bool { return c.EncerradoEm != nil }
