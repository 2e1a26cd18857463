package vo

// UploadState tracks how far an upload has progressed through the
// pipeline. Transitions are forward-only; rollback returns the record
// and its files to absent rather than stepping states backwards.
type UploadState string

const (
	UploadStateCreated    UploadState = "created"    // metadata persisted, no bytes on disk
	UploadStateStored     UploadState = "stored"     // raw copy landed in storage
	UploadStateTranscoded UploadState = "transcoded" // all renditions produced
	UploadStateCommitted  UploadState = "committed"  // url persisted, terminal
)

// String returns the state name.
func (s UploadState) String() string {
	return string(s)
}

var uploadOrder = map[UploadState]int{
	UploadStateCreated:    0,
	UploadStateStored:     1,
	UploadStateTranscoded: 2,
	UploadStateCommitted:  3,
}

// CanTransitionTo permits only single forward steps.
func (s UploadState) CanTransitionTo(next UploadState) bool {
	cur, ok := uploadOrder[s]
	nxt, ok2 := uploadOrder[next]
	return ok && ok2 && nxt == cur+1
}
