package vault

// State is a stage of the pack/unpack state machine.
type State int

// Stages in the order they are entered.
const (
	SelectingFile State = iota
	AdmissionCheck
	KeyAcquisition
	Transforming
	Persisted
	Reported
	Rejected
)

func (s State) String() string {
	switch s {
	case SelectingFile:
		return "selecting-file"
	case AdmissionCheck:
		return "admission-check"
	case KeyAcquisition:
		return "key-acquisition"
	case Transforming:
		return "transforming"
	case Persisted:
		return "persisted"
	case Reported:
		return "reported"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}
