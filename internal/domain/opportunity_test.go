package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantFloat float64
	}{
		{name: "número", input: `1500.5`, wantValid: true, wantFloat: 1500.5},
		{name: "texto numérico", input: `"200"`, wantValid: true, wantFloat: 200},
		{name: "null", input: `null`},
		{name: "texto qualquer", input: `"bad"`},
		{name: "NaN", input: `"NaN"`},
		{name: "infinito", input: `"Inf"`},
		{name: "infinito negativo", input: `"-infinity"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.wantValid, a.Valid)
			assert.Equal(t, tt.wantFloat, a.Float())
		})
	}
}

func TestAmount_Scan(t *testing.T) {
	tests := []struct {
		name      string
		src       any
		wantValid bool
		wantFloat float64
	}{
		{name: "numeric em bytes", src: []byte("1234.56"), wantValid: true, wantFloat: 1234.56},
		{name: "float", src: 10.0, wantValid: true, wantFloat: 10},
		{name: "inteiro", src: int64(7), wantValid: true, wantFloat: 7},
		{name: "nulo", src: nil},
		{name: "NaN em bytes", src: []byte("NaN")},
		{name: "NaN em float", src: math.NaN()},
		{name: "infinito em float", src: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.Scan(tt.src))
			assert.Equal(t, tt.wantValid, a.Valid)
			assert.Equal(t, tt.wantFloat, a.Float())
		})
	}

	var a Amount
	assert.Error(t, a.Scan(true))
}
