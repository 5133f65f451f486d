package cmdlet

// Stage is one phase of the cmdlet lifecycle.
type Stage int

const (
	StageBegin Stage = iota
	StageProcess
	StageEnd
	StageStop
)

func (s Stage) String() string {
	switch s {
	case StageBegin:
		return "begin"
	case StageProcess:
		return "process"
	case StageEnd:
		return "end"
	case StageStop:
		return "stop"
	default:
		return "unknown"
	}
}

// State is where a cmdlet is in its lifecycle.
type State int

const (
	Created State = iota
	Injecting
	BegunProcessing
	Processing
	Ended
	Stopped

	// Failed is terminal: Begin returned an error. Only Stop is accepted.
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Injecting:
		return "injecting"
	case BegunProcessing:
		return "begun"
	case Processing:
		return "processing"
	case Ended:
		return "ended"
	case Stopped:
		return "stopped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// allows reports whether stage may run while the cmdlet is in state s.
func (s State) allows(stage Stage) bool {
	switch stage {
	case StageBegin:
		return s == Created
	case StageProcess, StageEnd:
		return s == BegunProcessing || s == Processing
	case StageStop:
		return true
	}
	return false
}
