package domain

type Stage struct {
	Key   string
	Label string
	// UpstreamLabel is the wording used by the tracking service.
	UpstreamLabel string
}

var stages = [...]Stage{
	{Key: "intake", Label: "Picked up", UpstreamLabel: "상품인수"},
	{Key: "in_transit", Label: "In transit", UpstreamLabel: "상품이동중"},
	{Key: "arrived_at_hub", Label: "Arrived at hub", UpstreamLabel: "배송지도착"},
	{Key: "out_for_delivery", Label: "Out for delivery", UpstreamLabel: "배송출발"},
	{Key: "delivered", Label: "Delivered", UpstreamLabel: "배송완료"},
}

// levelOffset is the distance between the upstream level scale and the
// zero-based stage index: level 2 is intake, level 6 is delivered.
const levelOffset = 2

func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages[:])
	return out
}

// ActiveStageIndex maps an upstream level to the highlighted stage. Levels
// outside the five visible stages highlight nothing.
func ActiveStageIndex(level int) (int, bool) {
	idx := level - levelOffset
	if idx < 0 || idx >= len(stages) {
		return 0, false
	}

	return idx, true
}

func IsStageActive(stageIndex, level int) bool {
	active, ok := ActiveStageIndex(level)
	return ok && active == stageIndex
}

type StageView struct {
	Stage
	Index  int
	Active bool
}

func Progress(level int) []StageView {
	views := make([]StageView, len(stages))
	for i, stage := range stages {
		views[i] = StageView{
			Stage:  stage,
			Index:  i,
			Active: IsStageActive(i, level),
		}
	}

	return views
}
