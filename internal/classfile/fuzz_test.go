package classfile

import (
	"math/rand"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

// Random and mutated inputs must produce errors, never panics.
func TestParse_Fuzz(t *testing.T) {
	valid, err := simpleClass(t).Bytes()
	require.NoError(t, err)

	f := fuzz.New().RandSource(rand.NewSource(1)).NilChance(0).NumElements(0, 256)
	for i := 0; i < 2000; i++ {
		var junk []byte
		f.Fuzz(&junk)
		_, _ = Parse(junk)
		_, _ = Decode(junk)
		_, _ = ParseStackMap(junk)
		_, _ = ParseCode(junk)

		mutated := append([]byte(nil), valid...)
		var at uint16
		var b byte
		f.Fuzz(&at)
		f.Fuzz(&b)
		mutated[int(at)%len(mutated)] = b
		if cf, err := Parse(mutated); err == nil {
			for _, m := range cf.Methods {
				if code, err := cf.Code(m); err == nil && code != nil {
					_ = code.InsertAt(cf.Pool, 0, []byte{byte(Nop)})
				}
			}
		}
	}
}
