package gaze

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ErrNoTargets is returned by FitShape when there is nothing to fit.
var ErrNoTargets = errors.New("gaze: no fit targets")

// Target is an annotated pointer position with the pitch, in degrees, a
// joint should take there. Yaw does not depend on the shape and is not fitted.
type Target struct {
	X      float32 `csv:"x"`
	Y      float32 `csv:"y"`
	Width  float32 `csv:"width"`
	Height float32 `csv:"height"`
	Pitch  float32 `csv:"pitch"`
}

// FitShape searches for the Shape whose pitch mapping best matches targets
// for a joint with the given limit, starting from init. It returns the fitted
// shape and its root-mean-square pitch error in degrees. When the optimizer
// stops with an error after making progress, the best shape found is returned
// along with the wrapped error.
func FitShape(targets []Target, limitDeg float32, init Shape) (Shape, float64, error) {
	if len(targets) == 0 {
		return init, 0, ErrNoTargets
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			s, ok := shapeFrom(x)
			if !ok {
				return math.MaxFloat64 / 4
			}
			return meanSquaredError(targets, limitDeg, s)
		},
	}

	initX := []float64{float64(init.VerticalSplit), float64(init.UpFactor), float64(init.DownDivisor)}
	result, err := optimize.Minimize(problem, initX, nil, &optimize.NelderMead{})
	return fitResult(targets, limitDeg, init, result, err)
}

// fitResult turns an optimizer outcome into a shape and its rms error.
func fitResult(targets []Target, limitDeg float32, init Shape, result *optimize.Result, err error) (Shape, float64, error) {
	if result == nil {
		return init, 0, fmt.Errorf("fitting gaze shape: %w", err)
	}

	fitted, ok := shapeFrom(result.X)
	if !ok {
		return init, 0, fmt.Errorf("fitting gaze shape: left valid range at %v", result.X)
	}
	rms := math.Sqrt(meanSquaredError(targets, limitDeg, fitted))
	if err != nil {
		return fitted, rms, fmt.Errorf("fitting gaze shape (%v after %d evaluations): %w", result.Status, result.FuncEvaluations, err)
	}
	return fitted, rms, nil
}

// shapeFrom converts optimizer coordinates, rejecting shapes Degrees cannot use.
func shapeFrom(x []float64) (Shape, bool) {
	s := Shape{
		VerticalSplit: float32(x[0]),
		UpFactor:      float32(x[1]),
		DownDivisor:   float32(x[2]),
	}
	if s.VerticalSplit <= 0.01 || s.VerticalSplit >= 0.99 || s.UpFactor < 0 || s.DownDivisor < 0.1 {
		return s, false
	}
	return s, true
}

func meanSquaredError(targets []Target, limitDeg float32, s Shape) float64 {
	var sum float64
	for _, t := range targets {
		_, pitch := s.Degrees(PointerSample{X: t.X, Y: t.Y}, Viewport{Width: t.Width, Height: t.Height}, limitDeg)
		d := float64(pitch - t.Pitch)
		sum += d * d
	}
	return sum / float64(len(targets))
}
