package model

// Step of an operation wizard.
type Step int

const (
	StepNone Step = iota
	StepWarning
	StepInit
	StepConfirm
	StepSign
	StepSubmit
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "NONE"
	case StepWarning:
		return "WARNING"
	case StepInit:
		return "INIT"
	case StepConfirm:
		return "CONFIRM"
	case StepSign:
		return "SIGN"
	case StepSubmit:
		return "SUBMIT"
	default:
		return "UNKNOWN"
	}
}
