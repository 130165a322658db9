package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger is satisfied by the postgres pool, the redis client and the memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	deps map[string]Pinger
}

// NewHealthUsecase reports on each named dependency; nil entries are skipped.
func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	result := map[string]string{
		"status": "ok",
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	for name, p := range u.deps {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			result[name] = "down"
			result["status"] = "degraded"
			continue
		}
		result[name] = "up"
	}
	return result
}
