package entity

import (
	"time"
)

// Base is embedded by rows whose identity is a store-assigned serial.
type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
