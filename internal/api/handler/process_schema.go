package handler

import (
	"github.com/google/uuid"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

type stepRequest struct {
	ID          string `json:"id" validate:"required"`
	Text        string `json:"text"`
	Done        bool   `json:"done"`
	IsMandatory bool   `json:"isMandatory"`
}

type processRequest struct {
	// ID is client-generated; when absent the server assigns one.
	ID          string        `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	IsMandatory bool          `json:"isMandatory"`
	ProcessType string        `json:"processType"`
	TimeNeeded  int           `json:"timeNeeded"`
	GroupName   string        `json:"groupName"`
	Deadline    string        `json:"deadline"`
	AssignedAt  string        `json:"assignedAt" validate:"required"`
	EditAt      string        `json:"editAt" validate:"required"`
	Steps       []stepRequest `json:"steps"`
}

type idListRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

type deletedStatusResponse struct {
	ID        string `json:"id"`
	IsDeleted bool   `json:"isDeleted"`
}

func (r *processRequest) toDomain() *domain.Process {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	steps := make([]domain.Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, s.toDomain())
	}
	return &domain.Process{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		IsMandatory: r.IsMandatory,
		ProcessType: r.ProcessType,
		TimeNeeded:  r.TimeNeeded,
		GroupName:   r.GroupName,
		Deadline:    r.Deadline,
		AssignedAt:  r.AssignedAt,
		EditAt:      r.EditAt,
		Steps:       steps,
	}
}

func (r stepRequest) toDomain() domain.Step {
	return domain.Step{
		ID:          r.ID,
		Text:        r.Text,
		Done:        r.Done,
		IsMandatory: r.IsMandatory,
	}
}
