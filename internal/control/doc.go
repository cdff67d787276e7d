// Package control programs the actuators between engine steps.
//
// Controllers implement the [shot.Controller] interface and mutate the
// actuator block in place each timestep:
//
//   - [Schedule]: programmed ramp-up / flat-top / ramp-down sequencing
//   - [VerticalPID]: feedback on vertical position through the vertical coils
//   - [Composite]: runs several controllers in order
//   - [Static]: leaves the actuators alone (open loop)
//
// # Usage
//
//	sched := control.NewSchedule(dev, 2.0, 0.5, 8.0, 1.5)
//	pid := control.NewVerticalPID(0.5, 0, 0)
//	r := shot.New(eng, control.NewComposite(sched, pid))
//
// [VerticalPID] supports live tuning through GetParams and SetParam.
package control
