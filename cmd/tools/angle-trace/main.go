// Command angle-trace plots joint-angle traces from a recorded frame
// log (one JSON frame per line, the same payload POSTed to
// /api/frame). Useful when tuning phase-transition thresholds.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fitmotion/repcore/internal/geom"
	"github.com/fitmotion/repcore/internal/pose"
)

var (
	in    = flag.String("in", "", "Frame log (JSONL, one frame per line)")
	out   = flag.String("out", "angles.png", "Output PNG file")
	joint = flag.String("joint", "elbow", "Joint to trace: elbow or knee")
	alpha = flag.Float64("alpha", pose.DefaultSmoothingAlpha, "Smoothing alpha applied before measuring")
)

type frameLine struct {
	Landmarks []pose.Keypoint `json:"landmarks"`
}

func main() {
	flag.Parse()
	if *in == "" {
		log.Fatal("missing -in frame log")
	}

	var a1, b1, c1, a2, b2, c2 int
	switch *joint {
	case "elbow":
		a1, b1, c1 = pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist
		a2, b2, c2 = pose.RightShoulder, pose.RightElbow, pose.RightWrist
	case "knee":
		a1, b1, c1 = pose.LeftHip, pose.LeftKnee, pose.LeftAnkle
		a2, b2, c2 = pose.RightHip, pose.RightKnee, pose.RightAnkle
	default:
		log.Fatalf("unknown joint %q (want elbow or knee)", *joint)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("Failed to open frame log: %v", err)
	}
	defer f.Close()

	smoother := pose.NewSmoother(*alpha)
	var left, right plotter.XYs

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	for i := 0; scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var fl frameLine
		if err := json.Unmarshal(line, &fl); err != nil {
			log.Fatalf("line %d: invalid frame: %v", i+1, err)
		}
		if len(fl.Landmarks) != pose.NumLandmarks {
			log.Fatalf("line %d: expected %d landmarks, got %d", i+1, pose.NumLandmarks, len(fl.Landmarks))
		}

		var frame pose.Frame
		copy(frame[:], fl.Landmarks)
		smoothed := smoother.Smooth(frame)

		left = append(left, plotter.XY{
			X: float64(i),
			Y: geom.AngleAtVertex(smoothed[a1], smoothed[b1], smoothed[c1]),
		})
		right = append(right, plotter.XY{
			X: float64(i),
			Y: geom.AngleAtVertex(smoothed[a2], smoothed[b2], smoothed[c2]),
		})
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read frame log: %v", err)
	}
	if len(left) == 0 {
		log.Fatal("frame log contains no frames")
	}

	p := plot.New()
	p.Title.Text = *joint + " angle trace"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "angle (degrees)"
	p.Y.Min, p.Y.Max = 0, 180

	if err := addLines(p, "left "+*joint, left, "right "+*joint, right); err != nil {
		log.Fatalf("Failed to build plot: %v", err)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, *out); err != nil {
		log.Fatalf("Failed to save plot: %v", err)
	}
	log.Printf("wrote %s (%d frames)", *out, len(left))
}

// addLines adds named line series to the plot.
func addLines(p *plot.Plot, name1 string, xys1 plotter.XYs, name2 string, xys2 plotter.XYs) error {
	l1, err := plotter.NewLine(xys1)
	if err != nil {
		return err
	}
	l2, err := plotter.NewLine(xys2)
	if err != nil {
		return err
	}
	l2.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(l1, l2)
	p.Legend.Add(name1, l1)
	p.Legend.Add(name2, l2)
	return nil
}
