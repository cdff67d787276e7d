package safety

// Action is a mitigation response category. Selecting and executing actions
// is the mitigation system's job; these values only name the contract.
type Action int

const (
	ActionNone Action = iota
	ActionGasInjection
	ActionPelletInjection
	ActionKillerPulse
	ActionGasAndKillerPulse
	ActionControlAdjust
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionGasInjection:
		return "massive_gas_injection"
	case ActionPelletInjection:
		return "pellet_injection"
	case ActionKillerPulse:
		return "killer_pulse"
	case ActionGasAndKillerPulse:
		return "mgi_killer_pulse"
	case ActionControlAdjust:
		return "control_adjust"
	default:
		return "unknown"
	}
}

// Prediction is the disruption forecast handed to the mitigation system.
type Prediction struct {
	Probability      float64
	TimeToDisruption float64
	Cause            string
}

// Decision is the mitigation system's response to a prediction.
type Decision struct {
	Action            Action
	Urgency           float64
	ControlAdjustment string
}

// Flags records which stability limits the current state violates.
type Flags struct {
	LowSafetyFactor      bool
	BetaLimit            bool
	VerticalDisplacement bool
	DensityLimit         bool
}

func (f Flags) Any() bool {
	return f.LowSafetyFactor || f.BetaLimit || f.VerticalDisplacement || f.DensityLimit
}
