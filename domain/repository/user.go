package repository

import (
	"context"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
)

type IUser interface {
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	Register(ctx context.Context, user model.User) error
}
