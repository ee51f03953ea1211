package app

import (
	"context"

	"github.com/prashantttzz/experimentlabs/internal/clients/gemini"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/realtime/bus"
)

type Clients struct {
	Gemini gemini.Client
	// Bus is nil when REDIS_ADDR is unset; the hub then delivers locally.
	Bus bus.Bus
}

func wireClients(ctx context.Context, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	llm, err := gemini.NewClient(ctx, log)
	if err != nil {
		return Clients{}, err
	}

	var b bus.Bus
	if rb, err := bus.NewRedisBus(log); err != nil {
		log.Warn("redis bus unavailable; realtime events stay local", "error", err)
	} else {
		b = rb
	}

	return Clients{Gemini: llm, Bus: b}, nil
}
