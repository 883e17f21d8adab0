package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// signalContext returns a context cancelled by the usual termination
// signals. The listener treats cancellation cooperatively: it finishes
// the in-flight message and exits at the next loop iteration, so a
// second signal during a hung shutdown force-exits.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	s := make(chan os.Signal, 2)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		select {
		case <-s:
			logrus.Info("shutdown requested, finishing in-flight work")
			cancel()
		case <-ctx.Done():
			signal.Stop(s)
			return
		}

		<-s
		logrus.Error("second signal received, force exit")
		os.Exit(1)
	}()

	return ctx, cancel
}
