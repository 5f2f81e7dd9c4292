package handler

import (
	"strings"
	"testing"
)

func TestValidator_ReportsWireNames(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{
			"short username",
			&registerRequest{Username: "al", Email: "al@example.com", Password: "secret123"},
			"username must be at least 3 characters",
		},
		{
			"bad email",
			&registerRequest{Username: "alice", Email: "nope", Password: "secret123"},
			"email must be a valid email address",
		},
		{
			"unknown role",
			&registerRequest{Username: "alice", Email: "al@example.com", Password: "secret123", Role: "ROOT"},
			"role must be one of [USER, ADMIN]",
		},
		{
			"negative count",
			&createQuizRequest{Category: "Java", Count: -1, Title: "T"},
			"noOfQ must be greater than 0",
		},
		{
			"missing refresh token",
			&refreshRequest{},
			"refreshToken is required",
		},
		{
			"bad difficulty",
			&addQuestionRequest{
				Title: "Q", Option1: "a", Option2: "b", Option3: "c", Option4: "d",
				Answer: "a", Category: "Java", Difficulty: "Impossible",
			},
			"difficulty must be one of [Easy, Medium, Hard]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.in)
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("message %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidator_AcceptsValidRequests(t *testing.T) {
	v := NewValidator()

	valid := []any{
		&registerRequest{Username: "alice", Email: "al@example.com", Password: "secret123", Role: "ADMIN"},
		&loginRequest{Username: "alice", Password: "secret123"},
		&createQuizRequest{Category: "Java", Count: 5, Title: "JVM basics"},
	}
	for _, in := range valid {
		if err := v.Validate(in); err != nil {
			t.Fatalf("%T: unexpected failure: %v", in, err)
		}
	}
}
