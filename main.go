package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/app"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/database"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/delivery"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/form"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/kv"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
	"github.com/NataliiaKozak/landing-frauen-fotoshooting/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	quiz := config.LoadQuiz(cfg.PagePath)
	log.Infof("Quiz storage key %q, success page %q, endpoint configured: %t",
		quiz.StorageKey, quiz.SuccessPage, quiz.EndpointConfigured())

	var storage kv.Scoper
	if cfg.DBUrl == "memory:" {
		storage = kv.NewMemory()
	} else {
		db, dialect, err := database.Open(cfg)
		if err != nil {
			log.Fatal("main.db.open:", err)
		}
		defer db.Close()
		storage = database.NewKV(db, dialect)
	}

	app := app.App{
		Config:  cfg,
		Quiz:    quiz,
		Storage: kv.WithQuota(storage, cfg.StorageQuota),
		Sink:    delivery.New(quiz, &http.Client{}),
		Form:    form.Load(cfg.PagePath),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handler := routes.Wire(ctx, app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.DeliveryTimeout + 10*time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
