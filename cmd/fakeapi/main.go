// Command fakeapi runs the in-process fake forum backend on a local port,
// for trying the CLI without the real service.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/forumkeeper/internal/fakeapi"
	"github.com/dmitrijs2005/forumkeeper/internal/logging"
	"github.com/gin-gonic/gin"
)

func main() {
	addr := flag.String("a", "localhost:8000", "listen address")
	secret := flag.String("secret", "fakeapi-secret", "JWT signing key")
	accessTTL := flag.Duration("access-ttl", time.Minute, "access token lifetime")
	user := flag.String("user", "demo", "seeded username")
	password := flag.String("password", "demo", "seeded password")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)

	logger, err := logging.New(os.Stdout, "text", "debug")
	if err != nil {
		log.Fatal(err)
	}

	srv := fakeapi.New(fakeapi.Options{
		Secret:    *secret,
		AccessTTL: *accessTTL,
		Logger:    logger,
		Users:     map[string]string{*user: *password},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := srv.Run(ctx, *addr); err != nil {
		log.Fatal(err)
	}
}
