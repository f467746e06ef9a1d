//go:build wireinject
// +build wireinject

package di

import (
	"roomboard/transport/http"

	"github.com/google/wire"
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
