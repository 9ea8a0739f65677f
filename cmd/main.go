package main

import (
	"context"
	"log"
	"time"

	"github.com/Dario0076/GestionPedidos/cmd/server"
	"github.com/Dario0076/GestionPedidos/internal/auth"
	"github.com/Dario0076/GestionPedidos/internal/cache"
	"github.com/Dario0076/GestionPedidos/internal/config"
	"github.com/Dario0076/GestionPedidos/internal/storage"
)

var (
	srvAddr                  = config.Env.ServerAddr
	postgresConnStr          = config.Env.PostgresConnStr
	redisAddr                = config.Env.RedisAddr
	accessTokenSecret        = config.Env.AccessTokenSecret
	refreshTokenSecret       = config.Env.RefreshTokenSecret
	accessTokenExpiryInSecs  = config.Env.AccessTokenExpiryInSecs
	refreshTokenExpiryInSecs = config.Env.RefreshTokenExpiryInSecs
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	if err := storage.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	productCache, err := cache.New(
		context.Background(),
		redisAddr,
		"products:",
		(5 * time.Minute),
	)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:  srvAddr,
		DB:    db,
		Cache: productCache,
		TokenManager: auth.NewTokenService(
			accessTokenSecret,
			refreshTokenSecret,
			accessTokenExpiryInSecs,
			refreshTokenExpiryInSecs,
		),
	},
	)
	srv.Run()
}
