package middleware

import (
	"fmt"
	"strings"

	"loves-api/internal/logger"
	"loves-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		if claims.TokenType != service.TokenTypeAccess {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)

		return c.Next()
	}
}

// OptionalAuth is a middleware function that optionally authenticates a user.
// If a valid access token is provided, it sets the userID in the context.
// Otherwise, it proceeds without setting the userID, allowing for anonymous access.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			logger.Get().Debug("OptionalAuth: authorization scheme is not Bearer, proceeding as anonymous",
				zap.String("header", authHeader))
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(tokenString)
		if err != nil || claims.TokenType != service.TokenTypeAccess {
			logger.Get().Debug("OptionalAuth: token invalid, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}
