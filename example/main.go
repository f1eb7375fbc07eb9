package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/predmove/predmove"
	"github.com/predmove/predmove/game"
	"github.com/predmove/predmove/player"
	"github.com/predmove/predmove/session"
	"github.com/predmove/predmove/transport"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const listenAddr = "localhost:8765"

// The following program runs a predicting client against an authoritative
// server over a local websocket, toggling the strafing mode mid-run so
// corrections and mode transitions can be observed in the log output.
func main() {
	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	serverReady := make(chan *session.Server, 1)
	http.HandleFunc("/play", func(w http.ResponseWriter, r *http.Request) {
		ws, err := transport.Upgrade(w, r)
		if err != nil {
			panic(err)
		}
		srv, err := predmove.NewServer("server.toml", ws)
		if err != nil {
			panic(err)
		}
		srv.Start()
		serverReady <- srv
	})
	go func() {
		if err := http.ListenAndServe(listenAddr, nil); err != nil {
			panic(err)
		}
	}()

	// Give the listener a moment before dialing.
	time.Sleep(time.Millisecond * 100)

	ws, err := transport.Dial(fmt.Sprintf("ws://%s/play", listenAddr))
	if err != nil {
		panic(err)
	}
	cl, err := predmove.NewClient("client.toml", ws)
	if err != nil {
		panic(err)
	}
	cl.Start()
	defer cl.Close()

	srv := <-serverReady
	defer srv.Close()

	cl.Player().Handle(demoHandler{})

	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	for tick := 0; tick < game.TickRate*10; tick++ {
		<-ticker.C

		// Run forward for two seconds, strafe for three, then release.
		switch tick {
		case game.TickRate * 2:
			cl.Strafe()
		case game.TickRate * 5:
			cl.UnStrafe()
		}

		in := session.Input{
			Impulse: mgl32.Vec2{1, 0},
			Yaw:     float32(tick) * 0.5,
			Jump:    tick%60 == 0,
		}
		if err := cl.Tick(in, game.StandardDelta); err != nil {
			panic(err)
		}
		if err := srv.Tick(); err != nil {
			panic(err)
		}

		if tick%game.TickRate == 0 {
			pos := cl.Player().Movement().Pos()
			fmt.Printf("t=%ds pos=(%.1f, %.1f, %.1f) strafing=%v\n",
				tick/game.TickRate, pos.X(), pos.Y(), pos.Z(), cl.Player().Movement().IsStrafing())
		}
	}
}

type demoHandler struct {
	player.NopHandler
}

func (demoHandler) OnStrafeStart() { fmt.Println("strafe started") }

func (demoHandler) OnStrafeEnd() { fmt.Println("strafe ended") }

func (demoHandler) OnCorrection(frame uint64) {
	fmt.Printf("corrected from frame %d\n", frame)
}
