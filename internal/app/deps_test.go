package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmgraph/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func checkDependencies(t *testing.T, cfg config.Config, pool fakePool) {
	t.Helper()

	deps, cleanup, err := buildDependencies(context.Background(), pool, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleanup == nil {
		t.Fatal("expected cleanup function")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = cleanup(ctx)
	}()

	if deps.Users == nil {
		t.Fatal("expected user store to be configured")
	}
	if deps.Films == nil {
		t.Fatal("expected film store to be configured")
	}
	if deps.Graph == nil {
		t.Fatal("expected friendship graph to be configured")
	}
	if deps.Likes == nil {
		t.Fatal("expected like service to be configured")
	}
	if deps.Genres == nil {
		t.Fatal("expected genre store to be configured")
	}
	if deps.Ratings == nil {
		t.Fatal("expected rating store to be configured")
	}
	if deps.Limiter == nil {
		t.Fatal("expected rate limiter to be configured")
	}
}

func TestBuildDependenciesPostgres(t *testing.T) {
	checkDependencies(t, config.Config{
		Storage:           config.StoragePostgres,
		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
		RateLimitBurst:    10,
	}, fakePool{})
}

func TestBuildDependenciesMemory(t *testing.T) {
	checkDependencies(t, config.Config{
		Storage:           config.StorageMemory,
		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
		RateLimitBurst:    10,
	}, fakePool{})
}
