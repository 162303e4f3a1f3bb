package session

import "time"

// State is the per-admin-session view state: the last search, the matched
// user key, and which document previews are open. It is threaded explicitly
// through handlers rather than read from globals.
type State struct {
	SearchedEmail  string          `json:"searchedEmail"`
	FoundUserID    string          `json:"foundUserId"`
	PreviewVisible map[string]bool `json:"previewVisible"`
	LastRefreshed  time.Time       `json:"lastRefreshed"`
}

func newState() *State {
	return &State{
		PreviewVisible: make(map[string]bool),
	}
}

// clone returns a copy safe to hand out after the manager lock is released.
func (s *State) clone() State {
	out := *s
	out.PreviewVisible = make(map[string]bool, len(s.PreviewVisible))
	for k, v := range s.PreviewVisible {
		out.PreviewVisible[k] = v
	}
	return out
}
