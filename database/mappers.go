package database

import (
	"database/sql"
	"time"

	"project-tracker/models"
)

var userMapper = Mapper[*models.User]{
	Table:   "users",
	Columns: []string{"username", "password_hash", "name"},
	Values: func(u *models.User) []any {
		return []any{u.Username, u.PasswordHash, u.Name}
	},
	Scan: func(row RowScanner) (*models.User, error) {
		var u models.User
		if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name); err != nil {
			return nil, err
		}
		return &u, nil
	},
}

var tokenMapper = Mapper[*models.Token]{
	Table:   "tokens",
	Columns: []string{"auth_token", "user_id", "issued_on", "expires_on"},
	Values: func(t *models.Token) []any {
		return []any{t.AuthToken, t.UserID, t.IssuedOn, t.ExpiresOn}
	},
	Scan: func(row RowScanner) (*models.Token, error) {
		var t models.Token
		if err := row.Scan(&t.ID, &t.AuthToken, &t.UserID, &t.IssuedOn, &t.ExpiresOn); err != nil {
			return nil, err
		}
		return &t, nil
	},
}

var contactMapper = Mapper[*models.Contact]{
	Table:   "contacts",
	Columns: []string{"first_name", "last_name", "email"},
	Values: func(c *models.Contact) []any {
		return []any{c.FirstName, c.LastName, c.Email}
	},
	Scan: func(row RowScanner) (*models.Contact, error) {
		var c models.Contact
		if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, err
		}
		return &c, nil
	},
}

var projectMapper = Mapper[*models.Project]{
	Table:   "projects",
	Columns: []string{"project_name", "start_date", "end_date", "is_set_date", "priority", "contact_id"},
	Values: func(p *models.Project) []any {
		return []any{p.ProjectName, p.StartDate, p.EndDate, p.IsSetDate, p.Priority, p.ContactID}
	},
	Scan: func(row RowScanner) (*models.Project, error) {
		var (
			p         models.Project
			start     sql.NullTime
			end       sql.NullTime
			priority  sql.NullInt64
			contactID sql.NullInt64
		)
		err := row.Scan(&p.ID, &p.ProjectName, &start, &end, &p.IsSetDate, &priority, &contactID)
		if err != nil {
			return nil, err
		}
		p.StartDate = nullableTime(start)
		p.EndDate = nullableTime(end)
		p.Priority = nullableInt(priority)
		p.ContactID = nullableInt(contactID)
		return &p, nil
	},
}

var taskMapper = Mapper[*models.Task]{
	Table: "tasks",
	Columns: []string{
		"task_name", "project_id", "start_date", "end_date",
		"is_parent", "priority", "parent_task_id", "status", "contact_id",
	},
	Values: func(t *models.Task) []any {
		return []any{
			t.TaskName, t.ProjectID, t.StartDate, t.EndDate,
			t.IsParent, t.Priority, t.ParentTaskID, t.Status, t.ContactID,
		}
	},
	Scan: func(row RowScanner) (*models.Task, error) {
		var (
			t         models.Task
			projectID sql.NullInt64
			start     sql.NullTime
			end       sql.NullTime
			priority  sql.NullInt64
			parentID  sql.NullInt64
			contactID sql.NullInt64
		)
		err := row.Scan(&t.ID, &t.TaskName, &projectID, &start, &end,
			&t.IsParent, &priority, &parentID, &t.Status, &contactID)
		if err != nil {
			return nil, err
		}
		t.ProjectID = nullableInt(projectID)
		t.StartDate = nullableTime(start)
		t.EndDate = nullableTime(end)
		t.Priority = nullableInt(priority)
		t.ParentTaskID = nullableInt(parentID)
		t.ContactID = nullableInt(contactID)
		return &t, nil
	},
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
