package models

import "time"

// APIError is the wire shape of every non-2xx response.
type APIError struct {
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100,personname"`
	LastName  string `json:"lastName" validate:"required,max=100,personname"`
	Email     string `json:"email" validate:"required,email"`
}

type ProjectRequest struct {
	ProjectName string     `json:"projectName" validate:"required,max=200"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate" validate:"omitempty,gtefield=StartDate"`
	IsSetDate   bool       `json:"isSetDate"`
	Priority    *int       `json:"priority" validate:"omitnil,gte=0,lte=5"`
	ContactID   *int       `json:"contactId" validate:"omitnil,gt=0"`
}

type TaskRequest struct {
	TaskName     string     `json:"taskName" validate:"required,max=200"`
	ProjectID    *int       `json:"projectId" validate:"omitnil,gt=0"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate" validate:"omitempty,gtefield=StartDate"`
	IsParent     bool       `json:"isParent"`
	Priority     *int       `json:"priority" validate:"omitnil,gte=0,lte=5"`
	ParentTaskID *int       `json:"parentTaskId" validate:"omitnil,gt=0"`
	ContactID    *int       `json:"contactId" validate:"omitnil,gt=0"`
}
