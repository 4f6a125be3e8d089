package mockapi

import (
	"sort"
	"time"

	"github.com/nycbus/busboard/internal/busapi"
)

// The production backend predicts time-of-day delay by interpolating a
// smoothed (LOWESS) curve fitted offline. The mock fits an equivalent curve
// from its own dataset: mean delay per distinct scheduled-arrival minute,
// smoothed with a centered moving average.

// smoothWindow is the number of neighbor points averaged on each side when
// smoothing the fitted curve.
const smoothWindow = 2

// curvePoint is one (minute-of-day, delay-minutes) sample of the model.
type curvePoint struct {
	minute float64
	delay  float64
}

// fitDelayCurve builds the time-of-day delay model from validated records.
// Returns nil when there are no records to fit.
func fitDelayCurve(records []Record) []curvePoint {
	type stats struct {
		sum   float64
		count int
	}
	perMinute := make(map[float64]*stats)
	for _, rec := range records {
		at := rec.arrivalTime()
		minute := float64(at.Hour()*60+at.Minute()) + float64(at.Second())/60
		st, ok := perMinute[minute]
		if !ok {
			st = &stats{}
			perMinute[minute] = st
		}
		st.sum += rec.DelayMinutes
		st.count++
	}
	if len(perMinute) == 0 {
		return nil
	}

	raw := make([]curvePoint, 0, len(perMinute))
	for minute, st := range perMinute {
		raw = append(raw, curvePoint{minute: minute, delay: st.sum / float64(st.count)})
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].minute < raw[j].minute })

	// Centered moving average over the sorted points.
	smoothed := make([]curvePoint, len(raw))
	for i := range raw {
		lo := i - smoothWindow
		if lo < 0 {
			lo = 0
		}
		hi := i + smoothWindow
		if hi > len(raw)-1 {
			hi = len(raw) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += raw[j].delay
		}
		smoothed[i] = curvePoint{
			minute: raw[i].minute,
			delay:  sum / float64(hi-lo+1),
		}
	}
	return smoothed
}

// interpolateCurve evaluates the curve at target via linear interpolation.
// Targets outside the fitted range take the boundary value.
func interpolateCurve(curve []curvePoint, target float64) float64 {
	if target <= curve[0].minute {
		return curve[0].delay
	}
	last := curve[len(curve)-1]
	if target >= last.minute {
		return last.delay
	}
	for i := 1; i < len(curve); i++ {
		if target > curve[i].minute {
			continue
		}
		a, b := curve[i-1], curve[i]
		if b.minute == a.minute {
			return b.delay
		}
		frac := (target - a.minute) / (b.minute - a.minute)
		return a.delay + frac*(b.delay-a.delay)
	}
	return last.delay
}

// PredictDelay evaluates the fitted model at an HH:MM:SS time of day. The
// predicted value is nil when the time does not parse or no curve could be
// fitted; the message reports the outcome either way.
func (d *Dataset) PredictDelay(timeStr string) *busapi.DelayPrediction {
	out := &busapi.DelayPrediction{RequestedTime: timeStr}

	t, err := time.Parse("15:04:05", timeStr)
	if err != nil || len(d.curve) == 0 {
		out.Message = "Prediction failed. The requested time might be invalid or an internal error occurred."
		return out
	}

	target := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
	predicted := round2(interpolateCurve(d.curve, target))
	out.PredictedDelayMinutes = &predicted
	out.Message = "Prediction successful."
	return out
}
