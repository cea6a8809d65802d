package dto

type BuildInput struct {
	SplitID   string
	Unit      string
	MaxPoints int
}

type PointOutput struct {
	Value    float64
	Label    string
	ISO      string
	VolumeKg float64
}

type ChartOutput struct {
	Points   []PointOutput
	MaxValue float64
	Unit     string
}
