// Command repcore runs the exercise analysis server: it accepts pose
// frames over HTTP, counts repetitions, times plank holds, and
// persists aggregates to a SQLite stats database.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitmotion/repcore/internal/api"
	"github.com/fitmotion/repcore/internal/config"
	"github.com/fitmotion/repcore/internal/exercise"
	"github.com/fitmotion/repcore/internal/session"
	"github.com/fitmotion/repcore/internal/stats"
	"github.com/fitmotion/repcore/internal/timeutil"
)

var (
	listen     = flag.String("listen", ":8080", "Listen address")
	dbPath     = flag.String("db", "repcore.db", "Path to the stats database")
	tuningPath = flag.String("tuning", "", "Path to a tuning JSON file (defaults apply if empty)")
	startWith  = flag.String("exercise", "pushup", "Exercise to start with (pushup, squat, plank)")
)

func main() {
	flag.Parse()

	tuning := config.EmptyTuningConfig()
	if *tuningPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
		log.Printf("Loaded tuning config from %s", *tuningPath)
	}

	store, err := stats.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open stats database: %v", err)
	}
	defer store.Close()

	sessCfg := session.Config{
		TickInterval:   tuning.GetTickInterval(),
		SmoothingAlpha: tuning.GetSmoothingAlpha(),
		Pushup:         tuning.PushupConfig(),
		Squat:          tuning.SquatConfig(),
		Plank:          tuning.PlankConfig(),
	}

	mgr := session.NewManager(timeutil.RealClock{}, store, sessCfg)
	store.SetSession(mgr.ID())

	mgr.SetRepetitionHandler(func(ex exercise.Exercise, count int) {
		log.Printf("rep counted: %s #%d", ex, count)
	})
	ex, err := parseStartExercise(*startWith)
	if err != nil {
		log.Fatalf("Invalid -exercise flag: %v", err)
	}
	mgr.Start(ex)
	log.Printf("session %s started with exercise %s", mgr.ID(), ex)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := mgr.Run(ctx); err != nil {
			log.Printf("tick loop exited with error: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:    *listen,
		Handler: api.NewServer(mgr, store).ServeMux(),
	}

	go func() {
		log.Printf("listening on %s", *listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	// Stop the tick source and flush pending plank time before exit.
	mgr.StopLoop()
	mgr.Stop()
}

func parseStartExercise(name string) (exercise.Exercise, error) {
	switch exercise.Exercise(name) {
	case exercise.Pushup, exercise.Squat, exercise.Plank:
		return exercise.Exercise(name), nil
	}
	return "", errors.New("must be one of pushup, squat, plank")
}
