package authService

import (
	"CostTracker/internal/api/auth"
	"CostTracker/pkg/bcrypt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenEnvelope, error)
}

type authService struct {
	log         *logrus.Logger
	bcryptUtils bcrypt.IBcrypt
}

func New(log *logrus.Logger, bcryptUtils bcrypt.IBcrypt) IAuthService {
	return &authService{
		log:         log,
		bcryptUtils: bcryptUtils,
	}
}
