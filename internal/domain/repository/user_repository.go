package repository

import (
	"context"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
