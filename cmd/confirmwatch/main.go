package main

import (
	"context"
	"log"

	"github.com/gabapcia/confirmwatch/internal/config"
	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/handlers/cli"
	"github.com/gabapcia/confirmwatch/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/confirmwatch/internal/infra/blockchain/geth"
	"github.com/gabapcia/confirmwatch/internal/infra/storage/redis"
	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/confirmwatch/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/confirmwatch/internal/pkg/transport/http"
	"github.com/gabapcia/confirmwatch/internal/pkg/transport/jsonrpc"
)

const serviceName = "confirmwatch"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	var (
		source confirmwatch.BlockSource
		opts   []confirmwatch.Option
	)
	if cfg.WSEndpoint != "" {
		gethClient, err := geth.Dial(ctx, cfg.WSEndpoint, retry.New())
		if err != nil {
			logger.Fatal(ctx, "failed to connect to websocket endpoint", "endpoint", cfg.WSEndpoint, "error", err)
		}
		defer gethClient.Close()

		source = gethClient
		opts = append(opts, confirmwatch.WithHeadSubscriber(gethClient))
	} else {
		source = ethereum.NewClient(jsonrpc.NewClient(transporthttp.NewClient(), cfg.RPCEndpoint))
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer redisClient.Close()

		opts = append(opts, confirmwatch.WithCheckpointStorage(redisClient))
	}

	svc, err := confirmwatch.New(source, confirmwatch.Configuration{
		ConfirmationThreshold:  cfg.ConfirmationThreshold,
		PollingInterval:        cfg.PollingInterval,
		ReceiptPollingInterval: cfg.ReceiptPollingInterval,
	}, opts...)
	if err != nil {
		logger.Fatal(ctx, "failed to build the confirmation watcher", "error", err)
	}

	if err := cli.Run(ctx, svc); err != nil {
		logger.Fatal(ctx, "confirmwatch exited with an error", "error", err)
	}
}
