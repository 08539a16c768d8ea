package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGazetteDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseGazetteDate("2022-06-21")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2022, 6, 21, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		_, err := ParseGazetteDate(" 2022-06-21 ")
		assert.NoError(t, err)
	})

	for _, bad := range []string{"", "2022-6-21", "21-06-2022", "2022-13-01", "latest"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ParseGazetteDate(bad)
			assert.True(t, errors.Is(err, ErrMalformedDate))
		})
	}
}

func TestGazetteFile_OnOrAfter(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2022, 6, d, 0, 0, 0, 0, time.UTC) }
	g := GazetteFile{Path: "a/1234/2022-06-21/a.txt", EntityID: "1234", Date: day(21), HasDate: true}

	assert.True(t, g.OnOrAfter(day(19)))
	assert.True(t, g.OnOrAfter(day(21)))
	assert.False(t, g.OnOrAfter(day(22)))
	assert.Equal(t, "2022-06-21", g.DateString())

	undated := GazetteFile{Path: "a/misc/a.txt"}
	assert.False(t, undated.OnOrAfter(day(1)))
	assert.Empty(t, undated.DateString())
}
