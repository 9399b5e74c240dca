package tdtrack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFalsy(t *testing.T) {
	type score int
	var nilMap map[string]any
	var nilPtr *int
	var nilErr error
	var nilFunc func()
	var nilChan chan int
	one := 1

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"false", false, true},
		{"true", true, false},
		{"empty string", "", true},
		{"string", "x", false},
		{"zero int", 0, true},
		{"int", -3, false},
		{"zero uint8", uint8(0), true},
		{"zero float", 0.0, true},
		{"negative zero", math.Copysign(0, -1), true},
		{"nan", math.NaN(), true},
		{"float", 0.5, false},
		{"named zero", score(0), true},
		{"nil map", nilMap, true},
		{"empty map", map[string]any{}, false},
		{"nil pointer", nilPtr, true},
		{"pointer", &one, false},
		{"empty slice", []int{}, false},
		{"struct", struct{}{}, false},
		{"nil interface value", nilErr, true},
		{"nil func", nilFunc, true},
		{"nil chan", nilChan, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFalsy(tt.value))
		})
	}
}

func TestNavigationState(t *testing.T) {
	var s NavigationState

	s.firstPage("/landing", "https://ref.example.com/")
	assert.Equal(t, NavigationState{Current: "/landing", Referrer: "https://ref.example.com/"}, s)

	s.pageChanged("/next")
	assert.Equal(t, NavigationState{Current: "/next", Referrer: "/landing"}, s)

	s.pageChanged("")
	assert.Equal(t, NavigationState{Current: "/next", Referrer: "/next"}, s)
}
