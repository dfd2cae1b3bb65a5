package models

import "time"

// User is an account that can authenticate and obtain tokens.
// Users are seeded at startup and immutable afterwards.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}

func (u *User) EntityID() int      { return u.ID }
func (u *User) SetEntityID(id int) { u.ID = id }

// Token is an opaque bearer credential bound to one user.
// It is immutable once issued; expiry is the only way it stops working.
type Token struct {
	ID        int       `json:"id"`
	AuthToken string    `json:"authToken"`
	UserID    int       `json:"userId"`
	IssuedOn  time.Time `json:"issuedOn"`
	ExpiresOn time.Time `json:"expiresOn"`
}

func (t *Token) EntityID() int      { return t.ID }
func (t *Token) SetEntityID(id int) { t.ID = id }

type Contact struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (c *Contact) EntityID() int      { return c.ID }
func (c *Contact) SetEntityID(id int) { c.ID = id }

type Project struct {
	ID          int        `json:"id"`
	ProjectName string     `json:"projectName"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsSetDate   bool       `json:"isSetDate"`
	Priority    *int       `json:"priority"`
	ContactID   *int       `json:"contactId"`

	// ProjectManager is the resolved contact name. Filled by the
	// project service, never stored.
	ProjectManager string `json:"projectManager,omitempty"`
}

func (p *Project) EntityID() int      { return p.ID }
func (p *Project) SetEntityID(id int) { p.ID = id }

// Task statuses. A task starts as TaskStatusOpen and is moved to
// TaskStatusEnded by the end operation.
const (
	TaskStatusOpen  = 0
	TaskStatusEnded = 1
)

type Task struct {
	ID           int        `json:"id"`
	TaskName     string     `json:"taskName"`
	ProjectID    *int       `json:"projectId"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	IsParent     bool       `json:"isParent"`
	Priority     *int       `json:"priority"`
	ParentTaskID *int       `json:"parentTaskId"`
	Status       int        `json:"status"`
	ContactID    *int       `json:"contactId"`

	// Resolved display names, filled by the task service, never stored.
	ContactName string `json:"contactName,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}

func (t *Task) EntityID() int      { return t.ID }
func (t *Task) SetEntityID(id int) { t.ID = id }
