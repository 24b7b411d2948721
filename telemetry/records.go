package telemetry

// CycleRecord is one gesture cycle, written to cycles.csv.
type CycleRecord struct {
	Seq        int     `csv:"seq"`
	StartedAt  float64 `csv:"started_at"` // Mixer clock seconds
	Clip       string  `csv:"clip"`
	Duration   float64 `csv:"duration"`
	DelayMS    int64   `csv:"delay_ms"`
	Pointer    string  `csv:"pointer"`
	X          float32 `csv:"x"`
	Y          float32 `csv:"y"`
	Rejections int     `csv:"rejections"` // Clicks rejected while the previous cycle was locked
}

// GazeRecord is one sampled joint orientation, written to gaze.csv.
type GazeRecord struct {
	Frame int     `csv:"frame"`
	Time  float64 `csv:"time"`
	Joint string  `csv:"joint"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	Yaw   float32 `csv:"yaw_deg"`
	Pitch float32 `csv:"pitch_deg"`
}
