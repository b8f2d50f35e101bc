package wcbplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks on round multiples of a power of ten,
// with labels printed at the precision the spacing needs, and unlabeled
// minor ticks in between.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}

	if max <= min {
		panic("illegal range")
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := int(n / float64(t.NSuggestedTicks-1))
	switch majorMult {
	case 7:
		majorMult = 6
	case 9:
		majorMult = 8
	}
	majorDelta := float64(majorMult) * tens

	var ticks []plot.Tick
	prec := int(math.Max(0, -math.Floor(math.Log10(majorDelta))))
	for val := math.Ceil(min/majorDelta) * majorDelta; val <= max+majorDelta*1e-9; val += majorDelta {
		v := round(val, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', prec, 64)})
	}

	minorDelta := majorDelta / 2
	switch majorMult {
	case 3, 6:
		minorDelta = majorDelta / 3
	case 5:
		minorDelta = majorDelta / 5
	}
	for val := math.Ceil(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if !hasTick(ticks, val, minorDelta*1e-6) {
			ticks = append(ticks, plot.Tick{Value: val})
		}
	}
	return ticks
}

// LogTicks labels each decade between min and max as 10^n.
type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= min {
		panic("illegal range")
	}

	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); e <= math.Ceil(math.Log10(max)); e++ {
		decade := math.Pow10(int(e))
		if decade >= min && decade <= max {
			ticks = append(ticks, plot.Tick{Value: decade, Label: "10^" + strconv.Itoa(int(e))})
		}
		for m := 2.; m < 10; m++ {
			v := m * decade
			if v >= min && v <= max {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	return ticks
}

// LogScale maps values logarithmically. Values at or below zero are drawn
// at the axis minimum.
type LogScale struct{}

func (LogScale) Normalize(min, max, x float64) float64 {
	if x <= min {
		return 0
	}
	logMin := math.Log10(min)
	return (math.Log10(x) - logMin) / (math.Log10(max) - logMin)
}

// UnlabeledTicks keeps the tick positions of Marker and drops the labels,
// for the upper panel of a ratio plot.
type UnlabeledTicks struct {
	Marker plot.Ticker
}

func (t UnlabeledTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.Marker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}

func hasTick(ticks []plot.Tick, v, tol float64) bool {
	for _, t := range ticks {
		if math.Abs(t.Value-v) < tol {
			return true
		}
	}
	return false
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// Make sure zero is returned
		// without the negative bit set.
		return 0
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}

	if x == 0 {
		return 0
	}

	return x / pow
}
