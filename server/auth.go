package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt"
)

func getSecretKey() string {
	return os.Getenv("SERVER_SECRET_KEY")
}

// getAllowedOrigins reads a comma separated CORS_ORIGINS.
func getAllowedOrigins() []string {
	origins := []string{}
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

type authJWTClaims struct {
	jwt.StandardClaims
	Email string `json:"email"`
}

func generateAccessToken(claims authJWTClaims) (string, error) {
	t := jwt.New(jwt.SigningMethodHS256)
	t.Claims = claims
	return t.SignedString([]byte(getSecretKey()))
}

func parseAccessToken(ts string) (*authJWTClaims, error) {
	var claims authJWTClaims
	kf := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(getSecretKey()), nil
	}
	token, err := jwt.ParseWithClaims(ts, &claims, kf)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &claims, nil
}
