package di

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/config"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/dbmysql"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/directory"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging/handler"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/push"
)

// Application bundles everything the service binary needs.
type Application struct {
	Config  *config.Config
	DB      *gorm.DB
	Feed    push.Feed
	Handler *handler.Handler
}

// ProvideFeed selects the insert-feed carrier: Redis pub/sub when enabled,
// otherwise the in-process hub.
func ProvideFeed(cfg *config.Config, log zerolog.Logger) (push.Feed, func(), error) {
	if !cfg.Redis.Enabled {
		return push.NewHub(), func() {}, nil
	}
	return push.NewRedisFeed(context.Background(), cfg.Redis.Addr, cfg.Redis.Channel, log)
}

func ProvidePublisher(feed push.Feed) push.Publisher {
	return feed
}

func ProvideInsertFeed(feed push.Feed) messaging.InsertFeed {
	return feed
}

// ProvideOperator builds the well-known roster entry that stands in for the
// business.
func ProvideOperator(cfg *config.Config) common.RosterEntry {
	return common.RosterEntry{
		ID:          cfg.Messaging.OperatorID,
		Role:        common.RoleOperator,
		DisplayName: cfg.Messaging.OperatorName,
	}
}

func ProvideDirectory(patients dbmysql.PatientRepository, caregivers dbmysql.CaregiverRepository, operator common.RosterEntry) messaging.Directory {
	return directory.NewService(patients, caregivers, operator)
}

func ProvideMessagingService(store messaging.MessageStore, dir messaging.Directory, feed messaging.InsertFeed, cfg *config.Config, log zerolog.Logger) messaging.Service {
	return messaging.NewService(store, dir, feed, cfg.Messaging.ThreadPageSize, log)
}
