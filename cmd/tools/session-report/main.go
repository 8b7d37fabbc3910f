// Command session-report renders an HTML activity report (per-day rep
// counts and plank hold time) from a repcore stats database.
package main

import (
	"flag"
	"log"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fitmotion/repcore/internal/exercise"
	"github.com/fitmotion/repcore/internal/stats"
)

var (
	dbPath = flag.String("db", "repcore.db", "Path to the stats database")
	out    = flag.String("out", "report.html", "Output HTML file")
	days   = flag.Int("days", 30, "How many days back to report")
)

func main() {
	flag.Parse()

	store, err := stats.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open stats database: %v", err)
	}
	defer store.Close()

	since := time.Now().AddDate(0, 0, -*days)
	totals, err := store.DailyTotals(since)
	if err != nil {
		log.Fatalf("Failed to query daily totals: %v", err)
	}
	if len(totals) == 0 {
		log.Fatalf("No activity recorded since %s", since.Format("2006-01-02"))
	}

	// Pivot the per-day rows into aligned series.
	dayset := map[string]bool{}
	pushups := map[string]int{}
	squats := map[string]int{}
	plankSec := map[string]float64{}
	for _, t := range totals {
		dayset[t.Day] = true
		switch exercise.Exercise(t.Exercise) {
		case exercise.Pushup:
			pushups[t.Day] += t.Reps
		case exercise.Squat:
			squats[t.Day] += t.Reps
		case exercise.Plank:
			plankSec[t.Day] += float64(t.PlankMillis) / 1000
		}
	}

	var dayList []string
	for d := range dayset {
		dayList = append(dayList, d)
	}
	sort.Strings(dayList)

	reps := charts.NewBar()
	reps.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Repetitions per day"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	var pushupData, squatData []opts.BarData
	for _, d := range dayList {
		pushupData = append(pushupData, opts.BarData{Value: pushups[d]})
		squatData = append(squatData, opts.BarData{Value: squats[d]})
	}
	reps.SetXAxis(dayList).
		AddSeries("push-ups", pushupData).
		AddSeries("squats", squatData)

	plank := charts.NewBar()
	plank.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Plank hold per day (seconds)"}),
	)
	var plankData []opts.BarData
	for _, d := range dayList {
		plankData = append(plankData, opts.BarData{Value: plankSec[d]})
	}
	plank.SetXAxis(dayList).AddSeries("plank", plankData)

	page := components.NewPage()
	page.AddCharts(reps, plank)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	log.Printf("wrote %s covering %d days", *out, len(dayList))
}
