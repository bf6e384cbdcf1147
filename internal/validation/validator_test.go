// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type innerConfig struct {
	Driver string `validate:"oneof=duckdb sqlite"`
	Batch  int    `validate:"gte=1"`
}

type outerConfig struct {
	Name   string      `validate:"required"`
	Inner  innerConfig
	Ks     []int   `validate:"required,min=1,dive,gte=1"`
	Weight float64 `validate:"gt=0"`
}

func validOuter() outerConfig {
	return outerConfig{
		Name:   "run",
		Inner:  innerConfig{Driver: "duckdb", Batch: 10},
		Ks:     []int{3, 10},
		Weight: 1.5,
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	cfg := validOuter()
	if err := ValidateStruct(&cfg); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *outerConfig)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing required",
			mutate:    func(c *outerConfig) { c.Name = "" },
			wantField: "Name",
			wantTag:   "required",
			wantMsg:   "Name is required",
		},
		{
			name:      "nested oneof",
			mutate:    func(c *outerConfig) { c.Inner.Driver = "mysql" },
			wantField: "Inner.Driver",
			wantTag:   "oneof",
			wantMsg:   "Inner.Driver must be one of: duckdb sqlite",
		},
		{
			name:      "nested gte",
			mutate:    func(c *outerConfig) { c.Inner.Batch = 0 },
			wantField: "Inner.Batch",
			wantTag:   "gte",
			wantMsg:   "Inner.Batch must be greater than or equal to 1",
		},
		{
			name:      "slice element",
			mutate:    func(c *outerConfig) { c.Ks = []int{3, 0} },
			wantField: "Ks[1]",
			wantTag:   "gte",
		},
		{
			name:      "empty slice",
			mutate:    func(c *outerConfig) { c.Ks = []int{} },
			wantField: "Ks",
			wantTag:   "min",
			wantMsg:   "Ks must contain at least 1 entries",
		},
		{
			name:      "gt",
			mutate:    func(c *outerConfig) { c.Weight = 0 },
			wantField: "Weight",
			wantTag:   "gt",
			wantMsg:   "Weight must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOuter()
			tt.mutate(&cfg)

			verr := ValidateStruct(&cfg)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}

			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("len(Errors()) = %d, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestStructError_JoinsMessages(t *testing.T) {
	cfg := validOuter()
	cfg.Name = ""
	cfg.Weight = -1

	verr := ValidateStruct(&cfg)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	msg := verr.Error()
	if !strings.Contains(msg, "Name is required") || !strings.Contains(msg, "Weight must be greater than 0") {
		t.Errorf("Error() = %q, want both field messages", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("Error() = %q, want messages joined by '; '", msg)
	}
}

func TestStructError_Empty(t *testing.T) {
	se := &StructError{}
	if se.Error() != "validation failed" {
		t.Errorf("Error() = %q, want %q", se.Error(), "validation failed")
	}
}
