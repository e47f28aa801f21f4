package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yungbote/content-intel-backend/internal/app"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type service interface {
	Start(ctx context.Context) error
	Run(ctx context.Context) error
	Close()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	application, err := app.New(ctx)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "init app: %v\n", err)
		os.Exit(1)
	}
	code := serve(ctx, application, application.Log)
	stop()
	os.Exit(code)
}

// serve starts the background workers and the HTTP server, closes svc, and
// returns the process exit code.
func serve(ctx context.Context, svc service, log *logger.Logger) int {
	defer svc.Close()
	if err := svc.Start(ctx); err != nil {
		log.Error("start failed", "error", err)
		return 1
	}
	if err := svc.Run(ctx); err != nil {
		log.Error("server failed", "error", err)
		return 1
	}
	return 0
}
