package middleware

import (
	"context"
	"errors"
	"net/http"
	"roomboard/infras/jwt"
	"roomboard/infras/otel"
	"roomboard/shared/constant"
	"roomboard/shared/failure"
	"roomboard/transport/http/response"
)

// StaffSession identifies the staff member operating the board. It grants no permissions.
type StaffSession interface {
	// Identify reads an optional bearer token. Requests without one pass through anonymously;
	// requests with a bad one are rejected.
	Identify(next http.Handler) http.Handler
}

type staffSessionImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewStaffSessionMiddleware(jwtService jwt.JWT, otel otel.Otel) StaffSession {
	return &staffSessionImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

func (m *staffSessionImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "staff_session.middleware")

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			scope.SetAttribute("staff.session", "anonymous")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Invalid staff session"
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = "Staff session has expired"
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyStaffID, claims.StaffID)
		ctx = context.WithValue(ctx, constant.ContextKeyStaffName, claims.StaffName)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.SetAttribute("staff.id", claims.StaffID)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
