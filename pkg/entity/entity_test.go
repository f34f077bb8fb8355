package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clientform/pkg/form"
)

func TestClient_FromEntityRoundTrip(t *testing.T) {
	e := form.Entity{"id": "c1", "name": "Ann", "lastname": "Doe", "phone": "555", "email": "a@b.com", "address": "X"}
	client := ClientFrom(e)

	if client.FullName() != "Ann Doe" {
		t.Fatalf("unexpected full name %q", client.FullName())
	}
	if diff := cmp.Diff(e, client.Entity()); diff != "" {
		t.Fatalf("entity mismatch (-want +got):\n%s", diff)
	}
	if _, ok := (Client{Name: "Ann"}).Entity()["id"]; ok {
		t.Fatalf("empty id must not be emitted")
	}
}

func TestJobFrom(t *testing.T) {
	job, err := JobFrom(form.Entity{"type_of_clothing": "dress", "description": "Hem", "budget": " 40.5 "})
	if err != nil {
		t.Fatalf("job: %v", err)
	}
	want := Job{TypeOfClothing: "dress", Description: "Hem", Budget: 40.5, Status: StatusPending}
	if diff := cmp.Diff(want, job); diff != "" {
		t.Fatalf("job mismatch (-want +got):\n%s", diff)
	}
	if job.ClothingLabel() != "Dress" {
		t.Fatalf("unexpected clothing label %q", job.ClothingLabel())
	}

	if _, err := JobFrom(form.Entity{"budget": "lots"}); err == nil {
		t.Fatalf("expected invalid budget to fail")
	}
}

func TestJob_WasQuotedBy(t *testing.T) {
	job := Job{Quotes: []Quote{{UserID: "u1", Amount: 10}, {UserID: "u2", Amount: 12}}}

	cases := map[string]bool{"u1": true, "u2": true, "u3": false, "": false}
	for user, want := range cases {
		if got := job.WasQuotedBy(user); got != want {
			t.Fatalf("WasQuotedBy(%q) = %v, want %v", user, got, want)
		}
	}
	if (Job{}).WasQuotedBy("u1") {
		t.Fatalf("job without quotes cannot be quoted")
	}
}

func TestJob_Cover(t *testing.T) {
	if _, ok := (Job{}).Cover(); ok {
		t.Fatalf("expected no cover without images")
	}
	job := Job{Images: []Image{{Path: "a.png"}, {Path: "b.png"}}}
	if cover, ok := job.Cover(); !ok || cover.Path != "a.png" {
		t.Fatalf("expected first image as cover, got %+v", cover)
	}
	if (Job{TypeOfClothing: "cape"}).ClothingLabel() != "cape" {
		t.Fatalf("unknown clothing should fall back to the key")
	}
}
