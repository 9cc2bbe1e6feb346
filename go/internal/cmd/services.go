package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/jaganpon/auction/go/clients/auctionapi"
	"github.com/jaganpon/auction/go/internal/auction"
	"github.com/jaganpon/auction/go/internal/auction/events"
	"github.com/jaganpon/auction/go/internal/auction/gateway"
	"github.com/jaganpon/auction/go/internal/store/memory"
	"github.com/jaganpon/auction/go/internal/tournament"
)

// backendStore is the full surface both store implementations provide.
type backendStore interface {
	auction.Store
	tournament.Repository
}

type Services struct {
	Tournament *tournament.Handler
	Session    *auction.Handler

	ConnectionManager *gateway.ConnectionManager
	WebSocket         *gateway.WebSocketHandler
	Consumer          *gateway.EventConsumer

	publisher *events.NATSPublisher
}

func setupServices(cfg ServiceConfig) (*Services, error) {
	// Store layer → app layer → HTTP handlers.
	var st backendStore
	var assigner tournament.Assigner
	if cfg.BackendURL != "" {
		st = auctionapi.NewClient(cfg.BackendURL, cfg.BackendToken)
		log.Info().Str("backend_url", cfg.BackendURL).Msg("using remote auction backend")
	} else {
		mem := memory.NewStore()
		st = mem
		assigner = mem
		log.Info().Msg("using in-memory auction backend")
	}

	services := &Services{}

	var publisher events.Publisher
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("setup event publisher: %w", err)
		}
		services.publisher = p
		publisher = p
	}

	policy := auction.DrawPolicy(cfg.DrawPolicy)
	if policy != auction.DrawPolicyOrdered && policy != auction.DrawPolicyRandom {
		return nil, fmt.Errorf("unknown draw policy %q", cfg.DrawPolicy)
	}

	session := auction.NewSession(st, publisher, policy, clockwork.NewRealClock())
	services.Session = auction.NewHandler(session)

	app := tournament.NewApp(st)
	services.Tournament = tournament.NewHandler(app, assigner)

	wsConfig := gateway.DefaultConnectionConfig()
	wsConfig.PingInterval = cfg.GatewayPingInterval
	wsConfig.WriteTimeout = cfg.GatewayWriteTimeout
	wsConfig.ReadTimeout = cfg.GatewayReadTimeout
	services.ConnectionManager = gateway.NewConnectionManager(wsConfig)
	services.WebSocket = gateway.NewWebSocketHandler(services.ConnectionManager)

	if cfg.NATSURL != "" {
		consumerConfig := gateway.DefaultConsumerConfig()
		consumerConfig.URL = cfg.NATSURL
		consumer, err := gateway.NewEventConsumer(services.ConnectionManager, consumerConfig)
		if err != nil {
			return nil, fmt.Errorf("setup event consumer: %w", err)
		}
		services.Consumer = consumer
	}

	return services, nil
}

// Close releases the event bus connections.
func (s *Services) Close() {
	if s.Consumer != nil {
		if err := s.Consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
}
