package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/joa2pac/conexa-star-wars-api/internal/auth"
	"github.com/joa2pac/conexa-star-wars-api/internal/bootstrap"
	"github.com/joa2pac/conexa-star-wars-api/internal/cognito"
	"github.com/joa2pac/conexa-star-wars-api/internal/config"
	"github.com/joa2pac/conexa-star-wars-api/internal/repos"
	"github.com/joa2pac/conexa-star-wars-api/internal/server"
	"github.com/joa2pac/conexa-star-wars-api/internal/store"
	moviesync "github.com/joa2pac/conexa-star-wars-api/internal/sync"
	"github.com/joa2pac/conexa-star-wars-api/pkg/cache"
	"github.com/joa2pac/conexa-star-wars-api/pkg/deps"
	"github.com/joa2pac/conexa-star-wars-api/pkg/swapi"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("aws config failed")
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})
	cipClient := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if cfg.CognitoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.CognitoEndpoint)
		}
	})

	// Local emulators start empty; create the tables there.
	if cfg.AWSEndpoint != "" {
		if err := bootstrap.EnsureTables(ctx, dynamoClient, cfg.MoviesTable, cfg.MovieDetailsTable); err != nil {
			log.Fatal().Err(err).Msg("table bootstrap failed")
		}
	}

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	repository := repos.New(store.NewDynamo(dynamoClient), cfg.MoviesTable, cfg.MovieDetailsTable)
	films := swapi.New(cfg.SwapiBaseURL)
	syncService := moviesync.New(repository.Movies, repository.Details, films)
	users := cognito.New(cipClient, cfg.CognitoUserPoolID, cfg.CognitoEndpoint != "")
	verifier := auth.NewVerifier(auth.NewKeySet(cfg.CognitoJWKSURL, 0))

	api := server.New(deps.ServerDeps{
		Repo:      repository,
		Sync:      syncService,
		Cognito:   users,
		Cache:     c,
		Auth:      verifier,
		Name:      "star-wars-api",
		StartedAt: time.Now(),
	}, cfg.CORSAllowedOrigins)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
