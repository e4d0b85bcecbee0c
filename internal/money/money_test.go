package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Cents
		wantErr bool
	}{
		{name: "whole and cents", input: "2.50", want: 250},
		{name: "integer", input: "12", want: 1200},
		{name: "single fractional digit pads", input: "2.5", want: 250},
		{name: "small amount", input: "0.05", want: 5},
		{name: "bare fraction", input: ".99", want: 99},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-1.25", want: -125},
		{name: "surrounding whitespace", input: " 9.50 ", want: 950},
		{name: "too many decimals", input: "1.999", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "exponent rejected", input: "1e2", wantErr: true},
		{name: "hex rejected", input: "0x10", wantErr: true},
		{name: "sign inside fraction", input: "2.-5", wantErr: true},
		{name: "plus inside fraction", input: "2.+5", wantErr: true},
		{name: "double negative", input: "-2.-5", wantErr: true},
		{name: "sign inside whole", input: "1-2.00", wantErr: true},
		{name: "leading plus rejected", input: "+2.50", wantErr: true},
		{name: "whole part overflows", input: "92233720368547758.99", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "2.50", Cents(250).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "12.00", Cents(1200).String())
	assert.Equal(t, "-1.25", Cents(-125).String())
}

func TestMul(t *testing.T) {
	// 2.50 x 3 + 1.00 x 2 = 9.50, exactly.
	total := MustParse("2.50").Mul(3) + MustParse("1.00").Mul(2)
	assert.Equal(t, MustParse("9.50"), total)
	assert.Equal(t, "9.50", total.String())
}

func TestJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(MustParse("9.50"))
	require.NoError(t, err)
	assert.Equal(t, `"9.50"`, string(b))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte(`"2.5"`), &c))
	assert.Equal(t, Cents(250), c)

	assert.Error(t, json.Unmarshal([]byte(`2.50`), &c), "bare JSON numbers are rejected")
}
