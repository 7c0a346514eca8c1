package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "REACT", "", "go", "  "})
	want := []string{"go", "react", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
}

func TestLowercaseTags(t *testing.T) {
	got := LowercaseTags([]string{"Travel", "FOOD", "Travel"})
	want := []string{"travel", "food", "travel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LowercaseTags = %v, want %v", got, want)
	}
	if out := LowercaseTags([]string{}); out == nil || len(out) != 0 {
		t.Errorf("LowercaseTags(empty) = %#v, want empty non-nil slice", out)
	}
}

func TestMissingTags(t *testing.T) {
	tests := []struct {
		name       string
		have, cand []string
		want       []string
	}{
		{"nothing new", []string{"a", "b"}, []string{"b", "a"}, nil},
		{"some new", []string{"a"}, []string{"a", "b", "c"}, []string{"b", "c"}},
		{"duplicates in candidates", nil, []string{"x", "x", "y"}, []string{"x", "y"}},
		{"no candidates", []string{"a"}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MissingTags(tt.have, tt.cand); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingTags = %v, want %v", got, tt.want)
			}
		})
	}
}
