package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recebimento is a recorded patient payment inside a caixa.
// Valor is the base amount; the effective total adds the price of each
// linked procedimento, resolved by the Tabela selector (internal/pricing).
type Recebimento struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PacienteNome    string          `gorm:"type:varchar(150);not null"`
	PacienteCPF     string          `gorm:"type:varchar(14)"`
	Valor           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FormaPagamento  string          `gorm:"type:varchar(40);not null"`
	Tabela          string          `gorm:"type:varchar(40);not null"`
	Baixa           string          `gorm:"type:varchar(40);not null"`
	Indicador       string          `gorm:"type:varchar(80);not null"`
	ProfissionalID  *uuid.UUID      `gorm:"type:uuid"`
	EspecialidadeID *uuid.UUID      `gorm:"type:uuid"`
	Observacao      string
	CreatedAt       time.Time `gorm:"index"`

	Profissional  *Profissional  `gorm:"foreignKey:ProfissionalID"`
	Especialidade *Especialidade `gorm:"foreignKey:EspecialidadeID"`
	Procedimentos []Procedimento `gorm:"many2many:recebimento_procedimentos"`
}

// RecebimentoProcedimento is the join row linking a recebimento to a
// procedimento. Written explicitly (inside the same transaction as the
// recebimento) so a failure cannot leave a partial link set.
type RecebimentoProcedimento struct {
	RecebimentoID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProcedimentoID uuid.UUID `gorm:"type:uuid;primaryKey"`
}
