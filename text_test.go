package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple", "the quick brown fox", []string{"the", "quick", "brown", "fox"}},
		{"case and punctuation", "Hello, World! Hello?", []string{"hello", "world", "hello"}},
		{"numbers dropped", "route 66 and 3rd street", []string{"route", "and", "street"}},
		{"compatibility forms", "ｆｕｌｌ width", []string{"full", "width"}},
		{"unicode letters", "Café naïve", []string{"café", "naïve"}},
		{"empty", "", nil},
		{"only punctuation", "... !!! ---", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestCountTerms(t *testing.T) {
	stop := NewStopWords("The", " and ", "a")

	got := CountTerms("The cat and the hat. A cat!", stop)
	assert.Equal(t, Frequencies{"cat": 2, "hat": 1}, got)

	got = CountTerms("The cat and the hat", nil)
	assert.Equal(t, Frequencies{"the": 2, "cat": 1, "and": 1, "hat": 1}, got)
}

func TestStopWords(t *testing.T) {
	stop := NewStopWords("Of", "ＴＨＥ")
	assert.True(t, stop.Contains("of"))
	assert.True(t, stop.Contains("the"))
	assert.False(t, stop.Contains("cat"))

	var none StopWords
	assert.False(t, none.Contains("of"))
}
