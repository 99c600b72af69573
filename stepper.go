package canopy

import "math"

// Stepper is a bounded numeric control capability: a value in [Min, Max]
// moved in increments of Step.
type Stepper struct {
	Min, Max, Step float64
	Value          float64
}

// SetStepper attaches a bounded control to id. value is clamped into range.
// Panics if step is not positive or min > max.
func (w *World) SetStepper(id ID, min, max, step, value float64) {
	if step <= 0 {
		panic("canopy: stepper step must be positive")
	}
	if min > max {
		panic("canopy: stepper min exceeds max")
	}
	w.get(id).stepper = &Stepper{Min: min, Max: max, Step: step, Value: clamp(value, min, max)}
}

// StepperValue returns id's current value.
func (w *World) StepperValue(id ID) float64 {
	return w.mustStepper(id).Value
}

// SetStepperValue clamps v into range, snaps it to the step grid anchored at
// Min and publishes valueChanged when it differs from the current value.
func (w *World) SetStepperValue(id ID, v float64) {
	st := w.mustStepper(id)
	v = clamp(v, st.Min, st.Max)
	v = st.Min + math.Round((v-st.Min)/st.Step)*st.Step
	v = math.Min(v, st.Max)
	if v == st.Value {
		return
	}
	st.Value = v
	w.get(id).bus.Publish(EventValueChanged, id, v)
}

// StepUp increments id's value by one step.
func (w *World) StepUp(id ID) {
	st := w.mustStepper(id)
	w.SetStepperValue(id, st.Value+st.Step)
}

// StepDown decrements id's value by one step.
func (w *World) StepDown(id ID) {
	st := w.mustStepper(id)
	w.SetStepperValue(id, st.Value-st.Step)
}

func (w *World) mustStepper(id ID) *Stepper {
	st := w.get(id).stepper
	if st == nil {
		panic("canopy: object has no stepper")
	}
	return st
}
