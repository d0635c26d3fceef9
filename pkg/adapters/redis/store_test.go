package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/pkg/adapters/redis"
	"github.com/latticehq/lattice/pkg/domain"
	"github.com/latticehq/lattice/pkg/ports"
)

func testClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(testClient(t))
	ports.RunDocumentStoreContract(t, store)
}

func TestRedisStore_NormalizesOnLoad(t *testing.T) {
	ctx := context.Background()
	store := redis.NewFromClient(testClient(t))

	// A document whose flow step carries a raw buttonAction setting.
	page := &domain.Page{
		ID: "doc-1",
		Steps: []domain.Step{
			{ID: "s1", Frames: []domain.Frame{
				{ID: "f1", Stacks: []domain.Stack{
					{ID: "k1", Blocks: []domain.Block{
						{
							ID:   "b1",
							Type: domain.BlockApplicationFlow,
							Flow: &domain.Flow{Steps: []domain.FlowStep{
								{
									ID: "fs-1",
									Settings: map[string]any{
										"buttonAction": map[string]any{
											"action":       "go-to-step",
											"targetStepId": "fs-2",
										},
									},
								},
								{ID: "fs-2"},
							}},
						},
					}},
				}},
			}},
		},
	}
	require.NoError(t, store.Save(ctx, "doc-1", page))

	loaded, err := store.Load(ctx, "doc-1")
	require.NoError(t, err)

	// The canonical action was re-lifted from settings after the JSON
	// round trip, even though it is never serialized itself.
	fs := loaded.Steps[0].Frames[0].Stacks[0].Blocks[0].Flow.Steps[0]
	require.NotNil(t, fs.Action)
	assert.Equal(t, domain.ActionGoToStep, fs.Action.Action)
	assert.Equal(t, "fs-2", fs.Action.TargetStepID)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))

	page := &domain.Page{ID: "doc-ttl", Steps: []domain.Step{{ID: "s1"}}}
	require.NoError(t, store.Save(ctx, "doc-ttl", page))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "doc-ttl")

	// After the TTL passes, the key is gone and List prunes the index.
	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "doc-ttl")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "doc-ttl")
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))

	page := &domain.Page{ID: "doc-1", Steps: []domain.Step{{ID: "s1"}}}
	require.NoError(t, store.Save(ctx, "doc-1", page))

	assert.True(t, mr.Exists("custom:doc-1"))
}
