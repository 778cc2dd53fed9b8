package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is a clinic staff account. Accounts created only with a name
// (legacy compatibility path) are stored inactive, with a synthetic
// e-mail and a random password, and cannot log in.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	SenhaHash string    `gorm:"type:varchar(255);not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}
