package model

import "time"

// Notification severity levels used by flashes and the history.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a single user-facing notification: the toast the
// original client showed, kept as data so it can be flashed to the
// client and recorded in the history.
type Notice struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notification is a persisted notice in the history table backing
// the /notifications page.
//
// Fields:
//  ID        - primary key of the history row.
//  SubjectID - user the notice was addressed to.
//  Level     - success or error.
//  Title     - short headline.
//  Message   - body text.
//  Source    - the operation that emitted it, e.g. "members.suspend".
//  CreatedAt - when the notice was recorded.
type Notification struct {
	ID        uint64    `json:"id"`
	SubjectID string    `json:"subjectId"`
	Level     string    `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
