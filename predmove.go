// Package predmove implements client-side movement prediction with server
// reconciliation for a tick-based character simulation. The predicting side
// simulates locally without waiting for confirmation, the authoritative side
// replays the same inputs through the same solver, and any divergence is
// resolved by rewinding to the confirmed state and resimulating the
// unconfirmed window.
package predmove

import (
	"github.com/predmove/predmove/session"
	"github.com/predmove/predmove/settings"
	"github.com/predmove/predmove/transport"
	"github.com/sirupsen/logrus"
)

// NewClient creates a predicting session with the settings at the given path,
// creating the file with defaults when it does not exist.
func NewClient(confPath string, tr transport.Transport) (*session.Client, error) {
	conf, err := settings.ReadOrCreate(confPath)
	if err != nil {
		return nil, err
	}
	return session.NewClient(newLogger(), conf, tr)
}

// NewServer creates an authoritative session with the settings at the given
// path, creating the file with defaults when it does not exist.
func NewServer(confPath string, tr transport.Transport) (*session.Server, error) {
	conf, err := settings.ReadOrCreate(confPath)
	if err != nil {
		return nil, err
	}
	return session.NewServer(newLogger(), conf, tr)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return log
}
