package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortsAndTrims(t *testing.T) {
	res := Parse(" Daisy, Bessie ,Clarabelle,Buttercup ")
	assert.Equal(t, []string{"Bessie", "Buttercup", "Clarabelle", "Daisy"}, res.List)
	assert.Equal(t, 4, res.Count)
	assert.Nil(t, res.Freq)
}

func TestParseWithFreq(t *testing.T) {
	res := Parse("Bessie,Buttercup,Clarabelle,Émilie", WithFreq())
	assert.Equal(t, map[string]int{"B": 2, "C": 1, "É": 1}, res.Freq)
}

func TestParseDropsEmptyItems(t *testing.T) {
	res := Parse("a,, ,b,")
	assert.Equal(t, []string{"a", "b"}, res.List)
	assert.Equal(t, 2, res.Count)

	res = Parse("")
	assert.Empty(t, res.List)
	assert.Equal(t, 0, res.Count)
}

func TestParseTokens(t *testing.T) {
	res := ParseTokens([]string{"zed", " amy ", "max"})
	assert.Equal(t, []string{"amy", "max", "zed"}, res.List)

	res = ParseTokens([]string{"b,a"}, WithFreq())
	assert.Equal(t, []string{"a", "b"}, res.List)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, res.Freq)
}
