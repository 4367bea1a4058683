// Command chunkctl is the command-line front end for the chunker library.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/codeforge-labs/chunkweave/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
