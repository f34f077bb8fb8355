package form

import "github.com/goliatone/go-clientform/pkg/field"

// Identifiers and actions of the built-in forms.
const (
	ClientFormID = "client.new"
	JobFormID    = "job.new"

	EntityClient = "client"
	EntityJob    = "job"

	ActionCreateClient = "clients/create"
	ActionCreateJob    = "jobs/create"
)

// ClothingType is one entry of the job clothing catalogue.
type ClothingType struct {
	Key   string
	Label string
}

// ClothingTypes lists the clothing a job may be raised for, in display order.
var ClothingTypes = []ClothingType{
	{Key: "shirt", Label: "Shirt"},
	{Key: "trousers", Label: "Trousers"},
	{Key: "dress", Label: "Dress"},
	{Key: "skirt", Label: "Skirt"},
	{Key: "suit", Label: "Suit"},
	{Key: "jacket", Label: "Jacket"},
	{Key: "coat", Label: "Coat"},
	{Key: "other", Label: "Other"},
}

// ClothingKeys returns the catalogue keys in display order.
func ClothingKeys() []string {
	keys := make([]string, 0, len(ClothingTypes))
	for _, item := range ClothingTypes {
		keys = append(keys, item.Key)
	}
	return keys
}

// ClientDefinition declares the new-client form.
func ClientDefinition() Definition {
	required := []field.RuleID{field.RuleRequired}
	return Definition{
		ID:     ClientFormID,
		Title:  "New client",
		Entity: EntityClient,
		Action: ActionCreateClient,
		Fields: []FieldSpec{
			{Name: "name", Label: "Name", Rules: required},
			{Name: "lastname", Label: "Lastname", Rules: required},
			{Name: "phone", Label: "Phone", Rules: required},
			{Name: "email", Label: "Email", Rules: []field.RuleID{field.RuleRequired, field.RuleEmail}},
			{Name: "address", Label: "Address", Rules: required},
		},
	}
}

// JobDefinition declares the new-job form.
func JobDefinition() Definition {
	return Definition{
		ID:     JobFormID,
		Title:  "New job",
		Entity: EntityJob,
		Action: ActionCreateJob,
		Fields: []FieldSpec{
			{
				Name:    "type_of_clothing",
				Label:   "Type of clothing",
				Rules:   []field.RuleID{field.RuleRequired, field.RuleOneOf},
				Options: ClothingKeys(),
			},
			{Name: "description", Label: "Description", Rules: []field.RuleID{field.RuleRequired}},
			{Name: "budget", Label: "Budget", Rules: []field.RuleID{field.RuleRequired, field.RuleNumeric}},
		},
	}
}

// Builtins returns the built-in definitions keyed by id.
func Builtins() map[string]Definition {
	client, job := ClientDefinition(), JobDefinition()
	return map[string]Definition{
		client.ID: client,
		job.ID:    job,
	}
}
