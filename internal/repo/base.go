package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the domain repositories to share the GORM handle and
// context plumbing.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB binds the request context to the connection so cancellation and
// deadlines flow into queries. A nil context returns the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
