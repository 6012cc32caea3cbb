package textnorm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t ", ""},
		{"about marker", "ca 3 dl grädde", "3 dl grädde"},
		{"about marker with period", "Ca. 2 msk smör", "2 msk smör"},
		{"leading en dash", "– 1 burk krossade tomater", "1 burk krossade tomater"},
		{"trailing quantity moves to front", "Dill plockad - 50 ml", "50 ml Dill plockad"},
		{"trailing quantity dropped when amount exists", "2 dl mjölk - 2 dl", "2 dl mjölk"},
		{"hyphenated name with trailing quantity", "Citron- ortris - 1 st", "1 st Citron- ortris"},
		{"amount dash name", "3 - ägg", "3 ägg"},
		{"range is left alone", "1-2 dl vatten", "1-2 dl vatten"},
		{"mojibake", "2 dl mjÃ¶lk", "2 dl mjölk"},
		{"collapse whitespace", "1  msk   olivolja ", "1 msk olivolja"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanLine(tc.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "vitlok", Fold("Vitlök"))
	assert.Equal(t, "gradde", Fold("GRÄDDE"))
	assert.Equal(t, "creme fraiche", Fold("Crème fraiche"))
	assert.Equal(t, "pasar", Fold("påsar"))
}

func TestFoldConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if got := Fold("Crème fraîche och vitlök"); got != "creme fraiche och vitlok" {
					t.Errorf("Fold = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNameTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vitlök, finhackad", "vitlok"},
		{"Gul lök stor", "gul lok"},
		{"Grönsaksbuljong tärning", "gronsaksbuljong"},
		{"Gronsaksbuljongtarning", "gronsaksbuljongtarning"},
		{"forp gnocchi", "gnocchi"},
		{"port ris", "ris"},
		{"Tomater (gärna plommon)", "tomater"},
		{"olivolja att steka i", "olivolja"},
		{"Kycklingfilé 2 st", "kycklingfile"},
		{"Citroner pressad saft och rivet skal", "citroner"},
		{"Crème fraiche", "creme fraiche"},
		{"morötter i bitar", "morotter"},
		{"  ", ""},
		{"2 ½", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NameTokens(tc.in))
		})
	}
}

func TestNameTokensIdempotent(t *testing.T) {
	for _, in := range []string{"Vitlök, finhackad", "Krossade tomater à 400 g", "Dill plockad"} {
		once := NameTokens(in)
		assert.Equal(t, once, NameTokens(once), in)
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		in     string
		amount string
		rest   string
	}{
		{"2 klyftor vitlök", "2", "klyftor vitlök"},
		{"0,5 dl vatten", "1/2", "dl vatten"},
		{"0.5 dl vatten", "1/2", "dl vatten"},
		{"1½ msk olivolja", "3/2", "msk olivolja"},
		{"1 ½ dl mjölk", "3/2", "dl mjölk"},
		{"1 1/2 dl mjölk", "3/2", "dl mjölk"},
		{"½ tsk salt", "1/2", "tsk salt"},
		{"3/4 dl grädde", "3/4", "dl grädde"},
		{"400g nötfärs", "400", "g nötfärs"},
		{"2", "2", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			amount, rest, ok := SplitAmount(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.amount, amount.RatString())
			assert.Equal(t, tc.rest, rest)
		})
	}
}

func TestSplitAmountMissing(t *testing.T) {
	amount, rest, ok := SplitAmount("forp gnocchi")
	assert.False(t, ok)
	assert.Nil(t, amount)
	assert.Equal(t, "forp gnocchi", rest)
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	_, ok := ParseAmount("")
	assert.False(t, ok)
	_, ok = ParseAmount("abc")
	assert.False(t, ok)
}
