package model

import "github.com/google/uuid"

// Profissional is a clinic professional referenced by recebimentos for
// reporting. Only an identity and a display name.
type Profissional struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"type:varchar(150);not null"`
}

// Especialidade is a medical specialty referenced by recebimentos.
type Especialidade struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome string    `gorm:"type:varchar(150);not null"`
}
