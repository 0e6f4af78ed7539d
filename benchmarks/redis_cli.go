package benchmarks

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/interleave-dev/interleave/explore"
)

// RedisIncrCommand explores the interleavings of two workers performing a
// racy GET-then-SET increment against a live Redis. The shared counter
// lives in Redis; the engine still sees the accesses through the trace
// markers, so the lost update shows up in a real store.
func RedisIncrCommand() *cobra.Command {
	var addr string
	var key string
	cmd := &cobra.Command{
		Use: "redis-incr",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			cli := redis.NewClient(&redis.Options{
				Addr: addr,
			})
			if err := cli.Ping(ctx).Err(); err != nil {
				fmt.Printf("No redis server reachable at %s, skipping: %v\n", addr, err)
				return nil
			}

			increment := func(c *explore.Ctx, state any) {
				r := state.(*redisCounter)
				c.Read(objCounter)
				current, err := r.cli.Get(r.ctx, r.key).Int()
				if err != nil && err != redis.Nil {
					panic(err)
				}
				c.Write(objCounter)
				if err := r.cli.Set(r.ctx, r.key, strconv.Itoa(current+1), 0).Err(); err != nil {
					panic(err)
				}
			}

			scenario := explore.Scenario{
				Name: "redis-incr",
				Setup: func() any {
					if err := cli.Set(ctx, key, "0", 0).Err(); err != nil {
						panic(err)
					}
					return &redisCounter{cli: cli, ctx: ctx, key: key}
				},
				Threads: []explore.ThreadFunc{increment, increment},
				Invariant: func(state any) bool {
					r := state.(*redisCounter)
					v, err := r.cli.Get(r.ctx, r.key).Int()
					return err == nil && v == 2
				},
			}
			return runScenario(scenario)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:6379", "Redis server address")
	cmd.Flags().StringVar(&key, "key", "interleave:counter", "Key used for the shared counter")
	return cmd
}

type redisCounter struct {
	cli *redis.Client
	ctx context.Context
	key string
}
