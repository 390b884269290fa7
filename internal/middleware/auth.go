package middleware // middleware provides shared request processing for handlers

import (
	"strings" // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/pygus/pygus-backend/internal/webutil"
)

// TokenGuard returns an Echo middleware that gates a route behind a valid
// bearer token. It rejects requests lacking an Authorization header, verifies
// the HS256 signature with the provided secret and, on success, stores the
// identity claims in the request context under "user_id", "email" and "name".
// The guard checks signature validity only; it does not inspect claims for
// authorization scope. Rejections use the standard response envelope so the
// failure shape matches every other error in the API.
func TokenGuard(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return webutil.Fail(c, nil, "Você não tem acesso a essa rota")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject tokens signed with anything but HMAC; otherwise a
				// crafted token could pick its own verification scheme.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return webutil.Fail(c, nil, "Token inválido")
			}

			if claims, ok := tok.Claims.(jwt.MapClaims); ok {
				c.Set("user_id", claims["id"])
				c.Set("email", claims["email"])
				c.Set("name", claims["name"])
			}
			return next(c)
		}
	}
}
