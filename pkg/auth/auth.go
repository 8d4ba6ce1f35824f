package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

var JWTKey = jwtKey()

func jwtKey() []byte {
	if k := os.Getenv("JWT_KEY"); k != "" {
		return []byte(k)
	}
	return []byte("ebook-secret")
}

type Claims struct {
	Profile struct {
		Username    string `json:"username"`
		IsSuperuser bool   `json:"isSuperuser"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ctxKey int

const (
	userNameKey ctxKey = iota
	superuserKey
)

func SetAuthContext(ctx context.Context, username string, superuser bool) context.Context {
	ctx = context.WithValue(ctx, userNameKey, username)
	return context.WithValue(ctx, superuserKey, superuser)
}

func UserName(ctx context.Context) (string, error) {
	username, ok := ctx.Value(userNameKey).(string)
	if !ok || username == "" {
		return "", errors.New("no username in context")
	}
	return username, nil
}

func IsSuperuser(ctx context.Context) bool {
	su, ok := ctx.Value(superuserKey).(bool)
	return ok && su
}
