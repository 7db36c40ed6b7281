package lead

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nao1215/salesqueen/internal/model"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 600)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims whitespace", in: "  Acme Bakery \n", want: "Acme Bakery"},
		{name: "empty", in: "", want: ""},
		{name: "only whitespace", in: " \t ", want: ""},
		{name: "caps length", in: long, want: strings.Repeat("a", MaxFieldLength)},
		{name: "counts runes not bytes", in: strings.Repeat("é", 501), want: strings.Repeat("é", MaxFieldLength)},
		{name: "trims after cut", in: strings.Repeat("b", 499) + "  tail", want: strings.Repeat("b", 499)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize() = %q (len %d), want %q", got, len(got), tt.want)
			}
			if utf8.RuneCountInString(got) > MaxFieldLength {
				t.Errorf("Sanitize() returned %d runes", utf8.RuneCountInString(got))
			}
			if again := Sanitize(got); again != got {
				t.Errorf("Sanitize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := model.Lead{BusinessName: "Old", Phone: "123"}
	got := Merge(base, Patch{
		FieldBusinessName: "  New Name ",
		FieldEmail:        "a@b.co",
		Field("unknown"):  "ignored",
	})

	want := model.Lead{BusinessName: "New Name", Phone: "123", Email: "a@b.co"}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
	if base.BusinessName != "Old" {
		t.Error("Merge() modified its input")
	}
}

type recordingPersister struct {
	calls []model.Lead
	ok    bool
}

func (r *recordingPersister) PersistLead(_ context.Context, l model.Lead) bool {
	r.calls = append(r.calls, l)
	return r.ok
}

func TestCapture_SetWritesThrough(t *testing.T) {
	t.Parallel()

	p := &recordingPersister{ok: true}
	c := NewCapture(p)

	if ok := c.Set(context.Background(), Patch{FieldIndustry: " bakery "}); !ok {
		t.Fatal("Set() = false, want true")
	}
	if ok := c.Set(context.Background(), Patch{FieldPhone: "555"}); !ok {
		t.Fatal("Set() = false, want true")
	}

	if len(p.calls) != 2 {
		t.Fatalf("persister called %d times, want 2", len(p.calls))
	}
	want := model.Lead{Industry: "bakery", Phone: "555"}
	if p.calls[1] != want {
		t.Errorf("persisted %+v, want %+v", p.calls[1], want)
	}
	if c.Get() != want {
		t.Errorf("Get() = %+v, want %+v", c.Get(), want)
	}
}

func TestCapture_SetReportsFailure(t *testing.T) {
	t.Parallel()

	c := NewCapture(&recordingPersister{ok: false})
	if ok := c.Set(context.Background(), Patch{FieldNotes: "x"}); ok {
		t.Error("Set() = true, want false when the write fails")
	}
	if c.Get().Notes != "x" {
		t.Error("the in-memory lead should keep the update even when the write fails")
	}
}

func TestCapture_CaptureFromPlace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		place       model.Place
		wantAddress string
	}{
		{
			name:        "prefers vicinity",
			place:       model.Place{Name: "Cafe", Vicinity: "MG Road", FormattedAddress: "12 MG Road, Pune"},
			wantAddress: "MG Road",
		},
		{
			name:        "falls back to formatted address",
			place:       model.Place{Name: "Cafe", FormattedAddress: "12 MG Road, Pune"},
			wantAddress: "12 MG Road, Pune",
		},
		{
			name:        "empty when neither is present",
			place:       model.Place{Name: "Cafe"},
			wantAddress: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCapture(nil)
			c.CaptureFromPlace(context.Background(), tt.place)

			got := c.Get()
			if got.BusinessName != "Cafe" {
				t.Errorf("BusinessName = %q, want Cafe", got.BusinessName)
			}
			if got.Address != tt.wantAddress {
				t.Errorf("Address = %q, want %q", got.Address, tt.wantAddress)
			}
		})
	}
}

func TestCapture_ReplaceDoesNotPersist(t *testing.T) {
	t.Parallel()

	p := &recordingPersister{ok: true}
	c := NewCapture(p)
	c.Replace(model.Lead{BusinessName: " Restored "})

	if len(p.calls) != 0 {
		t.Errorf("Replace() persisted %d times, want 0", len(p.calls))
	}
	if c.Get().BusinessName != "Restored" {
		t.Errorf("BusinessName = %q, want Restored", c.Get().BusinessName)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lead model.Lead
		want []error
	}{
		{name: "minimal", lead: model.Lead{BusinessName: "Acme"}},
		{name: "full", lead: model.Lead{BusinessName: "Acme", Email: "owner@acme.in", Website: "https://acme.in"}},
		{name: "missing name", lead: model.Lead{}, want: []error{ErrBusinessNameRequired}},
		{name: "bad email", lead: model.Lead{BusinessName: "Acme", Email: "not-an-email"}, want: []error{ErrInvalidEmail}},
		{name: "relative website", lead: model.Lead{BusinessName: "Acme", Website: "acme.in"}, want: []error{ErrInvalidWebsite}},
		{name: "ftp website", lead: model.Lead{BusinessName: "Acme", Website: "ftp://acme.in"}, want: []error{ErrInvalidWebsite}},
		{
			name: "several problems",
			lead: model.Lead{Email: "nope", Website: "nope"},
			want: []error{ErrBusinessNameRequired, ErrInvalidEmail, ErrInvalidWebsite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.lead)
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("Validate() = %v, want it to wrap %v", err, w)
				}
			}
		})
	}
}
