package app

import (
	"github.com/humanbelnik/matchpoint/core/internal/config"
	http_init "github.com/humanbelnik/matchpoint/core/internal/delivery/http/init"
	http_room "github.com/humanbelnik/matchpoint/core/internal/delivery/http/room"
	http_swagger "github.com/humanbelnik/matchpoint/core/internal/delivery/http/swagger"
	http_vote "github.com/humanbelnik/matchpoint/core/internal/delivery/http/voting"
	ws_room "github.com/humanbelnik/matchpoint/core/internal/delivery/ws/room"
	infra_catalog "github.com/humanbelnik/matchpoint/core/internal/infra/catalog"
	infra_pg_init "github.com/humanbelnik/matchpoint/core/internal/infra/postgres/init"
	infra_postgres_room "github.com/humanbelnik/matchpoint/core/internal/infra/postgres/room"
	infra_postgres_vote "github.com/humanbelnik/matchpoint/core/internal/infra/postgres/vote"
	infra_redis_codeset "github.com/humanbelnik/matchpoint/core/internal/infra/redis/codeset"
	infra_redis_init "github.com/humanbelnik/matchpoint/core/internal/infra/redis/init"
	"github.com/humanbelnik/matchpoint/core/internal/service/pool"
	usecase_room "github.com/humanbelnik/matchpoint/core/internal/usecase/room"
	usecase_vote "github.com/humanbelnik/matchpoint/core/internal/usecase/vote"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	var catalog usecase_room.Catalog
	if cfg.Catalog.APIKey == "" {
		catalog = infra_catalog.NewMock()
	} else {
		catalog = infra_catalog.New(cfg.Catalog)
	}

	roomRepository := infra_postgres_room.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	codeSet := infra_redis_codeset.New(redisConn, "active_room_codes")
	poolBuilder := pool.New()

	roomUC := usecase_room.New(roomRepository, catalog, codeSet, poolBuilder, 50 /* stale room sweeps on every _ creation */)
	voteUC := usecase_vote.New(voteRepository)

	hub := ws_room.NewHub(roomUC)
	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_room.New(roomUC, hub, http_room.WithDefaultReapAge(cfg.Reaper.MaxAge)))
	controllerPool.Add(http_vote.New(voteUC, roomUC, hub))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
