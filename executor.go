package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/kinovzor/kinovzor-client/internal/shardqueue"
)

// executor abstracts the internal job runner used by mutation APIs.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	ExecuteWait(context.Context, string, shardqueue.Job) error
	Stop()
}

// newDefaultExecutor constructs the shardqueue executor from environment
// config (KVQ_ prefix), falling back to built-in defaults.
func newDefaultExecutor() *shardqueue.ShardExecutor {
	cfg, err := shardqueue.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("client: invalid KVQ_ config, using defaults")
		cfg = shardqueue.Config{}
	}
	return shardqueue.NewShardExecutor(cfg)
}
