package domain

import "errors"

var ErrProcessNotFound = errors.New("process not found")
var ErrProcessExists = errors.New("process already exists")
var ErrProcessDeleted = errors.New("process already deleted")
var ErrStepExists = errors.New("step already exists")

// Step is a single checklist item belonging to one Process.
type Step struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	IsMandatory bool   `json:"isMandatory"`
}

// Process is the core aggregate: a task with metadata, a deadline, and a
// checklist of Steps. Timestamps travel as wire datetime strings (see
// TimeCodec); EditAt is the last-write-wins version used by the sync
// resolver.
type Process struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsMandatory bool   `json:"isMandatory"`
	ProcessType string `json:"processType"`
	TimeNeeded  int    `json:"timeNeeded"`
	GroupName   string `json:"groupName"`
	Deadline    string `json:"deadline"`
	AssignedAt  string `json:"assignedAt"`
	EditAt      string `json:"editAt"`
	Steps       []Step `json:"steps"`
}

// EditSummary is the lightweight poll target sync clients use to detect
// which processes changed without fetching full bodies.
type EditSummary struct {
	ID     string `json:"id"`
	EditAt string `json:"editAt"`
}
