package app

import (
	"context"
	"net/http"
	"time"

	"github.com/Paulagot/quizroom/internal/events"
	"github.com/Paulagot/quizroom/internal/game"
	"github.com/Paulagot/quizroom/internal/handler"
	"github.com/Paulagot/quizroom/internal/logger"
	"github.com/Paulagot/quizroom/internal/service"
	"github.com/Paulagot/quizroom/internal/storage"
	"github.com/Paulagot/quizroom/internal/ws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type App struct {
	cfg Config
	log *zap.Logger
	db  *pgxpool.Pool
	nc  *nats.Conn
	srv *http.Server
}

func New(cfg Config) (*App, error) {
	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: l}

	var qs storage.QuestionStore
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		db, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.db = db
		qs = storage.NewPostgresQuestionStore(db)
	} else {
		l.Warn("DATABASE_URL not set, using in-memory question store")
		qs = storage.NewMemoryQuestionStore()
	}

	hub := ws.NewHub(l)

	var sink game.Sink = hub
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.nc = nc
		sink = events.NewNATSSink(hub, nc, l)
	}

	rm := game.NewRoomManager()
	orc := game.NewOrchestrator(rm, qs, sink, l, game.Config{
		AnswerGrace:    cfg.AnswerGrace,
		TiebreakWindow: cfg.TiebreakWindow,
		PrizeCount:     cfg.PrizeCount,
	})

	gameSvc := service.NewGameService(orc, service.Config{})
	adminSvc := service.NewAdminService(qs)
	hub.SetService(gameSvc)

	a.srv = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(gameSvc, adminSvc, hub, cfg.AdminToken, l),
	}
	return a, nil
}

func (a *App) Run() error {
	a.log.Info("server started",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("log_level", a.cfg.LogLevel),
		zap.Bool("postgres", a.db != nil),
		zap.Bool("nats", a.nc != nil),
	)
	return a.srv.ListenAndServe()
}

func (a *App) Close() {
	if a.nc != nil {
		a.nc.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
