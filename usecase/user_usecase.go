package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/model"
	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/configuration"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) dto.Res
	Register(ctx context.Context, req model.ReqRegister) dto.Res
}

type userUsecase struct {
	userRepository repository.IUser
}

func NewUserUsecase(userRepository repository.IUser) IUserUsecase {
	return &userUsecase{userRepository: userRepository}
}

func (u *userUsecase) Login(ctx context.Context, req model.ReqLogin) dto.Res {
	var res dto.Res
	user, err := u.userRepository.GetByUserName(ctx, req.UserName)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("User not found")
		res.ResponseCode = "401"
		res.ResponseMessage = "Unauthorized"
		return res
	}
	if user.Password != req.Password {
		res.ResponseCode = "401"
		res.ResponseMessage = "Unauthorized"
		return res
	}

	payload := map[string]interface{}{
		"iss":       fmt.Sprintf("%d", user.ID),
		"user_name": user.UserName,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token, err := utils.GenerateToken(payload, configuration.C.App.SecretKey)
	if err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "Internal Server Error"
		return res
	}

	res.ResponseCode = "200"
	res.ResponseMessage = "OK"
	res.Data = map[string]interface{}{"access_token": token, "user_name": user.UserName}
	return res
}

func (u *userUsecase) Register(ctx context.Context, req model.ReqRegister) dto.Res {
	var res dto.Res
	user := model.User{
		Name:     req.Name,
		UserName: req.UserName,
		Password: req.Password,
	}
	if err := u.userRepository.Register(ctx, user); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while register user")
		res.ResponseCode = "500"
		res.ResponseMessage = "Internal Server Error"
		return res
	}
	res.ResponseCode = "200"
	res.ResponseMessage = "OK"
	return res
}
