package ledger

// State is the coordinator's phase. A mutation moves Idle -> Submitting and
// then either back to Idle on failure, or through RefreshingOnSuccess.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
	StateRefreshingOnSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRefreshingOnSuccess:
		return "refreshing"
	default:
		return "unknown"
	}
}
