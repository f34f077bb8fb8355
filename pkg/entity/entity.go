// Package entity provides typed views over the flat entities produced by
// accepted submits.
package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-clientform/pkg/form"
)

// Client is a customer record produced by the client form.
type Client struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

// ClientFrom reads a Client out of a flattened form entity.
func ClientFrom(e form.Entity) Client {
	return Client{
		ID:       e["id"],
		Name:     e["name"],
		Lastname: e["lastname"],
		Phone:    e["phone"],
		Email:    e["email"],
		Address:  e["address"],
	}
}

// Entity converts c back into the flat form shape, e.g. to pre-fill an edit
// form. The id is carried through when set.
func (c Client) Entity() form.Entity {
	e := form.Entity{
		"name":     c.Name,
		"lastname": c.Lastname,
		"phone":    c.Phone,
		"email":    c.Email,
		"address":  c.Address,
	}
	if c.ID != "" {
		e["id"] = c.ID
	}
	return e
}

// FullName joins name and lastname.
func (c Client) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.Lastname)
}

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusQuoted     Status = "quoted"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Image is an uploaded reference picture for a job.
type Image struct {
	Path string `json:"path"`
}

// Quote is a price offer a user made for a job.
type Quote struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// Job is a tailoring request produced by the job form.
type Job struct {
	ID             string  `json:"id,omitempty"`
	TypeOfClothing string  `json:"type_of_clothing"`
	Description    string  `json:"description"`
	Budget         float64 `json:"budget"`
	Status         Status  `json:"status"`
	Images         []Image `json:"images,omitempty"`
	Quotes         []Quote `json:"quotes,omitempty"`
}

// JobFrom reads a Job out of a flattened form entity. New jobs start pending.
func JobFrom(e form.Entity) (Job, error) {
	job := Job{
		ID:             e["id"],
		TypeOfClothing: e["type_of_clothing"],
		Description:    e["description"],
		Status:         StatusPending,
	}
	if raw := strings.TrimSpace(e["budget"]); raw != "" {
		budget, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Job{}, fmt.Errorf("entity: job budget %q: %w", raw, err)
		}
		job.Budget = budget
	}
	if status := strings.TrimSpace(e["status"]); status != "" {
		job.Status = Status(status)
	}
	return job, nil
}

// ClothingLabel resolves the catalogue label of the job's clothing type,
// falling back to the raw key.
func (j Job) ClothingLabel() string {
	for _, item := range form.ClothingTypes {
		if item.Key == j.TypeOfClothing {
			return item.Label
		}
	}
	return j.TypeOfClothing
}

// WasQuotedBy reports whether userID already sent a quote for the job.
func (j Job) WasQuotedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, quote := range j.Quotes {
		if quote.UserID == userID {
			return true
		}
	}
	return false
}

// Cover returns the first image, which job views show by default.
func (j Job) Cover() (Image, bool) {
	if len(j.Images) == 0 {
		return Image{}, false
	}
	return j.Images[0], true
}
