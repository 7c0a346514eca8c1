package validation

import (
	"testing"
)

type signup struct {
	Username string   `json:"username" validate:"required,min=3,max=30"`
	Email    string   `json:"email"    validate:"required,email"`
	Avatar   string   `json:"avatar"   validate:"omitempty,uri"`
	Tags     []string `json:"tags"     validate:"max=2,dive,max=5"`
	OwnerID  string   `json:"ownerId"  validate:"omitempty,mongodb"`
}

type listQuery struct {
	Page  int `query:"page"  validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=50"`
}

func TestValidateStructMessages(t *testing.T) {
	valid := signup{Username: "john", Email: "john@example.com"}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"valid", &valid, ""},
		{"required", &signup{Email: "a@b.co"}, "username is required"},
		{"string min", &signup{Username: "jo", Email: "a@b.co"}, "username length must be at least 3 characters long"},
		{"email", &signup{Username: "john", Email: "nope"}, "email must be a valid email"},
		{"uri", &signup{Username: "john", Email: "a@b.co", Avatar: "not a uri"}, "avatar must be a valid uri"},
		{"slice max", &signup{Username: "john", Email: "a@b.co", Tags: []string{"a", "b", "c"}}, "tags must contain at most 2 items"},
		{"dive keeps index", &signup{Username: "john", Email: "a@b.co", Tags: []string{"ok", "toolong"}}, "tags[1] length must be at most 5 characters long"},
		{"mongodb", &signup{Username: "john", Email: "a@b.co", OwnerID: "xyz"}, "ownerId must be a valid id"},
		{"query tag names", &listQuery{Page: 1, Limit: 80}, "limit must be at most 50"},
		{"number min", &listQuery{Page: 0, Limit: 10}, "page must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(tt.in)
			if tt.want == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected %q, got nil", tt.want)
			}
			if got := verr.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestValidationErrorJoinsFields(t *testing.T) {
	verr := ValidateStruct(&signup{})
	if verr == nil {
		t.Fatal("expected error")
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields = %+v, want username and email", verr.Fields)
	}
	if got := verr.Error(); got != "username is required; email is required" {
		t.Errorf("Error() = %q", got)
	}
	if verr.Fields[0].Field != "username" || verr.Fields[0].Tag != "required" {
		t.Errorf("first field = %+v", verr.Fields[0])
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}
