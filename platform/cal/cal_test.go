package cal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coredb/platform"
	"github.com/solidcoredata/coredb/value"
)

// scenario 6's date, reused here to check the cal extractors against a
// known instant: 2024-02-28T23:41:19.081Z.
func TestExtractorsAgainstKnownInstant(t *testing.T) {
	d := value.DateMillis(1709163679081)

	cases := []struct {
		name string
		want int64
	}{
		{"year_of", 2024},
		{"month_of", 2},
		{"day_of", 28},
		{"hour24", 23},
		{"hour12", 11},
		{"minute_of", 41},
		{"second_of", 19},
	}
	for _, c := range cases {
		got, err := platform.Global().Invoke(pkg, c.name, []value.TypedValue{d})
		require.NoError(t, err, c.name)
		require.Equal(t, c.want, got.Int, c.name)
	}
}

func TestExtractorRejectsNonDate(t *testing.T) {
	_, err := platform.Global().Invoke(pkg, "year_of", []value.TypedValue{value.StringV("x")})
	require.Error(t, err)
}
