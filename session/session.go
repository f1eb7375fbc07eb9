// Package session wires a player instance to a transport: the Client ticks a
// predicting player and streams its moves out, the Server ticks the
// authoritative player from received moves and streams snapshots back. Each
// session's player is mutated only by that session's Tick caller; the
// transport pumps only produce into and consume from channel edges.
package session

import (
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove/perror"
	"github.com/sirupsen/logrus"
)

// Input is the per-tick input of the predicting side.
type Input struct {
	// Impulse holds the forward (X) and right (Y) input axes.
	Impulse mgl32.Vec2
	// Yaw is the heading in degrees.
	Yaw float32
	Jump bool
}

var sentryOnce sync.Once

// initSentry initialises sentry panic capture once. Disabled when the DSN is
// empty.
func initSentry(dsn string) {
	if dsn == "" {
		return
	}
	sentryOnce.Do(func() {
		_ = sentry.Init(sentry.ClientOptions{Dsn: dsn})
	})
}

// capturePanic reports a pump panic to sentry and the log without taking the
// whole process down.
func capturePanic(log *logrus.Logger, where string) {
	err := recover()
	if err == nil {
		return
	}
	log.Errorf("%s panic: %v", where, err)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("pump", where)
	})
	hub.Recover(perror.New("%v", err))
	hub.Flush(time.Second * 5)
}
