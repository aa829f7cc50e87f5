//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/config"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/dbmysql"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging/handler"
)

// InitializeApplication wires the messaging service together. Wire generates
// the real body in wire_gen.go.
func InitializeApplication(log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		config.Load,
		dbmysql.NewMySQL,
		ProvideFeed,
		ProvidePublisher,
		ProvideInsertFeed,
		ProvideOperator,
		dbmysql.NewMessageRepository,
		dbmysql.NewPatientRepository,
		dbmysql.NewCaregiverRepository,
		ProvideDirectory,
		ProvideMessagingService,
		handler.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}
