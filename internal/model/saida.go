package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Saida is a cash outflow from a caixa. Append-only: there is no update
// or delete operation.
type Saida struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descricao  string          `gorm:"type:varchar(200);not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Origem     string          `gorm:"type:varchar(40);not null"` // e.g. "Dinheiro" | "Outros"
	Observacao string
	CreatedAt  time.Time
}
