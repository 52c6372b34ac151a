package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		word string
		want Item
	}{
		{"true", Item{Kind: Bool, Bool: true}},
		{"false", Item{Kind: Bool, Bool: false}},
		{"0", Item{Kind: Int, Int: 0}},
		{"42", Item{Kind: Int, Int: 42}},
		{"-7", Item{Kind: Int, Int: -7}},
		{"+7", Item{Kind: Int, Int: 7}},
		{"9223372036854775807", Item{Kind: Int, Int: 9223372036854775807}},
		{"1.5", Item{Kind: Float, Float: 1.5}},
		{"-3.4e5", Item{Kind: Float, Float: -3.4e5}},
		{"1e3", Item{Kind: Float, Float: 1000}},
		{".5", Item{Kind: Float, Float: 0.5}},
		{"dup", Item{Kind: Term, Text: "dup"}},
		{"starts-with?", Item{Kind: Term, Text: "starts-with?"}},
		{"+", Item{Kind: Term, Text: "+"}},
		{"...", Item{Kind: Term, Text: "..."}},
		{"inf", Item{Kind: Term, Text: "inf"}},
		{"nan", Item{Kind: Term, Text: "nan"}},
		{"1.2.3", Item{Kind: Term, Text: "1.2.3"}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := Classify(tt.word, 0)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyHugeIntegerIsTerm(t *testing.T) {
	// Too big for int64, no point or exponent: stays a term.
	got := Classify("99999999999999999999", 0)
	require.Equal(t, Term, got.Kind)
}
