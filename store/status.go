package store

// Status tracks the lifecycle of one asynchronous fetch operation.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Fetch identifies one of the independent fetch operations. Each kind
// carries its own status and generation counter so one fetch's loading
// or error state never masks another's.
type Fetch int

const (
	FetchTrending Fetch = iota
	FetchNew
	FetchExplore
	FetchSearch

	fetchKinds
)

// OpState is the observable state of one fetch kind.
type OpState struct {
	Status Status
	Err    string // Last error message; empty unless Status is StatusFailed
}
