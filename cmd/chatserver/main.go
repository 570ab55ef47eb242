// Command chatserver runs the anonymous rendezvous chat server. It is
// deliberately thin: the listening address is its only configuration
// surface, and all design interest lives in pkg/chat.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathancary1/anonymous-chat-server/internal/logging"
	"github.com/jonathancary1/anonymous-chat-server/pkg/chat"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:3000", "address to listen on")
	flag.Parse()

	logger, err := logging.New()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	listener := chat.NewListener(logger)
	if err := listener.Listen(ctx, *addr); err != nil {
		logger.Infow("server exited", "err", err.Error())
		os.Exit(1)
	}
}
