package main

import (
	"os"
	"runtime"
	"time"

	"github.com/idena-network/ecosystem-client/config"
	"github.com/idena-network/ecosystem-client/core"
	"github.com/idena-network/ecosystem-client/db"
	"github.com/idena-network/ecosystem-client/db/file"
	"github.com/idena-network/ecosystem-client/db/memory"
	"github.com/idena-network/ecosystem-client/db/postgres"
	"github.com/idena-network/ecosystem-client/db/redis"
	"github.com/idena-network/ecosystem-client/server"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

func initLogger(verbosity int) {
	var handler log.Handler
	logLvl := log.Lvl(verbosity)
	if runtime.GOOS == "windows" {
		handler = log.LvlFilterHandler(logLvl, log.StreamHandler(os.Stdout, log.LogfmtFormat()))
	} else {
		handler = log.LvlFilterHandler(logLvl, log.StreamHandler(os.Stderr, log.TerminalFormat()))
	}
	log.Root().SetHandler(handler)
}

func initClient(appConfig *config.Config) (*core.RestClient, error) {
	if appConfig.BaseURL == "" || appConfig.UserId == "" {
		return nil, errors.New("BaseURL and UserId are required")
	}
	store, err := initStore(appConfig.Store)
	if err != nil {
		return nil, err
	}
	var jwt *string
	if appConfig.Jwt != "" {
		jwt = &appConfig.Jwt
	}
	return core.NewRestClient(core.Configuration{
		BaseURL:       appConfig.BaseURL,
		UserId:        appConfig.UserId,
		PublicAddress: appConfig.PublicAddress,
		Jwt:           jwt,
		AppId:         appConfig.AppId,
	}, store, core.NewHostIdentifierSource(appConfig.AdvertisingId)), nil
}

func initStore(storeConfig config.StoreConfig) (db.Store, error) {
	switch storeConfig.Type {
	case config.StorePostgres:
		return postgres.NewStore(storeConfig.Postgres.ConnStr, storeConfig.Postgres.ScriptsDir)
	case config.StoreRedis:
		return redis.NewStore(storeConfig.Redis.Url)
	case config.StoreMemory:
		return memory.NewStore(), nil
	default:
		return file.NewStore(storeConfig.File.Path)
	}
}

func initServer(appConfig *config.Config) *server.Server {
	return server.NewServer(appConfig.Server.Port, time.Second*time.Duration(appConfig.Server.TokenLifeTimeSec))
}
