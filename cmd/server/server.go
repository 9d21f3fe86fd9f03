package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-arena/internal/config"
	"github.com/KirkDiggler/rpg-arena/internal/engine/loop"
	"github.com/KirkDiggler/rpg-arena/internal/engine/world"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	adminv1alpha1 "github.com/KirkDiggler/rpg-arena/internal/handlers/admin/v1alpha1"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/ws"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-arena/internal/platform/otel"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
)

const (
	serviceName     = "rpg-arena"
	shutdownTimeout = 30 * time.Second
)

var (
	wsAddr    string
	grpcPort  int
	rulesPath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the arena server",
	Long:  `Start the websocket game server, the tick loop and the admin gRPC service.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&wsAddr, "ws-addr", "", "Websocket listen address (overrides ARENA_WS_ADDR)")
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "Admin gRPC port (overrides ARENA_GRPC_PORT)")
	serverCmd.Flags().StringVar(&rulesPath, "rules", "", "Rules file (overrides ARENA_RULES)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig(cmd)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	repo, closeRepo, err := newSessionRepository(ctx, &cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// a snapshot left by a previous process describes connections that no longer exist
	if out, err := repo.Delete(ctx, &sessions.DeleteInput{SessionID: cfg.SessionID}); err != nil {
		slog.Warn("failed to clear stale session", "session_id", cfg.SessionID, "error", err)
	} else if out.Deleted {
		slog.Info("cleared stale session", "session_id", cfg.SessionID)
	}

	app, err := buildArena(ctx, &cfg, &rules, repo)
	if err != nil {
		return err
	}

	grpcSrv, err := newGRPCServer(app, &cfg, repo)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.WSAddr,
		Handler:           app.hub.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.loop.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("websocket server starting", "addr", cfg.WSAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("websocket server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		app.hub.Close()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("websocket server shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcSrv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

// loadServerConfig reads the environment and applies explicit flags on top
func loadServerConfig(cmd *cobra.Command) (config.Server, error) {
	cfg, err := config.LoadServer()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("ws-addr") {
		cfg.WSAddr = wsAddr
	}
	if flags.Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("rules") {
		cfg.RulesPath = rulesPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// arenaApp is the wired game: world, session layer, transport and loop
type arenaApp struct {
	world    *world.World
	sessions session.Service
	hub      *ws.Hub
	loop     *loop.Loop
}

func buildArena(ctx context.Context, cfg *config.Server, rules *config.Rules, repo sessions.Repository) (*arenaApp, error) {
	notifications := &relay{}

	w, err := world.New(newWorldConfig(cfg, rules, notifications))
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	sessionSvc, err := session.NewOrchestrator(&session.Config{
		SessionID:          cfg.SessionID,
		Spawner:            w,
		Repository:         repo,
		Observer:           notifications,
		Characters:         rules.Characters,
		DefaultCharacterID: rules.DefaultCharacterID,
		SpawnPoints:        rules.SpawnPoints,
		SpawnRadius:        rules.SpawnRadius,
		RequireReady:       rules.RequireReady,
		MinPlayers:         rules.MinPlayers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	w.SetDeathListener(func(event arena.DeathEvent) {
		if event.OwnerID == "" {
			return
		}
		if _, err := sessionSvc.HandleDeath(context.Background(), &session.HandleDeathInput{
			ConnectionID: event.OwnerID,
			EntityID:     event.EntityID,
		}); err != nil {
			slog.Error("failed to record death", "connection_id", event.OwnerID, "entity_id", event.EntityID, "error", err)
		}
	})

	hub, err := ws.NewHub(&ws.HubConfig{Sessions: sessionSvc, Arena: w})
	if err != nil {
		return nil, fmt.Errorf("failed to create hub: %w", err)
	}
	notifications.attach(hub)

	for _, d := range rules.Dummies {
		id, err := w.SpawnDummy(ctx, d.CharacterID, d.Position, d.Rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to spawn dummy %s: %w", d.CharacterID, err)
		}
		slog.Info("dummy spawned", "entity_id", id, "character_id", d.CharacterID)
	}

	tickLoop, err := loop.New(&loop.Config{
		Target:    w,
		Interval:  rules.TickInterval(),
		AfterTick: hub.BroadcastState,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tick loop: %w", err)
	}

	return &arenaApp{world: w, sessions: sessionSvc, hub: hub, loop: tickLoop}, nil
}

func newGRPCServer(app *arenaApp, cfg *config.Server, repo sessions.Repository) (*grpc.Server, error) {
	logger := interceptorLogger(slog.Default())
	recovery := grpc_recovery.WithRecoveryHandler(func(p any) error {
		slog.Error("panic in gRPC handler", "panic", p)
		return status.Errorf(codes.Internal, "internal error")
	})

	srv := grpc.NewServer(
		otel.ServerOption(),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)

	adminHandler, err := adminv1alpha1.NewHandler(&adminv1alpha1.HandlerConfig{
		SessionID:  cfg.SessionID,
		Sessions:   app.sessions,
		Entities:   app.world,
		Repository: repo,
		Frames:     app.loop,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin handler: %w", err)
	}
	adminv1alpha1.RegisterAdminServiceServer(srv, adminHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(adminv1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, nil
}

// interceptorLogger adapts slog to the grpc middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
