package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `#YY  MM DD hh mm WDIR WSPD GST  WVHT   DPD   APD MWD   PRES  ATMP  WTMP  DEWP  VIS PTDY  TIDE
#yr  mo dy hr mn degT m/s  m/s     m   sec   sec degT   hPa  degC  degC  degC  nmi  hPa    ft
2026 08 24 17 40 180  5.1  6.2   1.2     9   6.8 210  1015.2 22.3  24.1  19.0   MM +0.2    MM
2026 08 24 17 30 190  4.8  5.9   1.1     9   6.6 212  1015.4 22.1  24.0  18.9   MM +0.1    MM
`

func TestParseReport(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		r, err := ParseReport(sampleReport)
		require.NoError(t, err)

		assert.Equal(t, 5, r.Column("WDIR"))
		assert.Equal(t, 6, r.Column("WSPD"))
		assert.Equal(t, 13, r.Column("ATMP"))
		assert.Len(t, r.Rows(), 2)
	})

	t.Run("unknown column is -1, not an error", func(t *testing.T) {
		r, err := ParseReport(sampleReport)
		require.NoError(t, err)
		assert.Equal(t, -1, r.Column("NOSUCH"))
	})

	t.Run("missing header fails with ErrMalformedReport", func(t *testing.T) {
		_, err := ParseReport("2026 08 24 17 40 180 5.1\n2026 08 24 17 30 190 4.8\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedReport)
	})

	t.Run("empty input fails with ErrMalformedReport", func(t *testing.T) {
		_, err := ParseReport("")
		assert.ErrorIs(t, err, ErrMalformedReport)
	})

	t.Run("header with zero data rows", func(t *testing.T) {
		r, err := ParseReport("#YY MM WDIR\n#yr mo degT\n")
		require.NoError(t, err)
		assert.Empty(t, r.Rows())
	})

	t.Run("units line does not shadow header", func(t *testing.T) {
		r, err := ParseReport(sampleReport)
		require.NoError(t, err)
		// "degT" is a units token, not a column name.
		assert.Equal(t, -1, r.Column("degT"))
	})
}

func TestNumeric(t *testing.T) {
	row := []string{"180", "MM", "abc", "1.5"}

	t.Run("parses finite number", func(t *testing.T) {
		v := Numeric(row, 0)
		require.NotNil(t, v)
		assert.Equal(t, 180.0, *v)
	})

	t.Run("missing sentinel is nil", func(t *testing.T) {
		assert.Nil(t, Numeric(row, 1))
	})

	t.Run("non-numeric token is nil", func(t *testing.T) {
		assert.Nil(t, Numeric(row, 2))
	})

	t.Run("absent column is nil", func(t *testing.T) {
		assert.Nil(t, Numeric(row, -1))
	})

	t.Run("short row is nil", func(t *testing.T) {
		assert.Nil(t, Numeric(row, 10))
	})
}

func TestText(t *testing.T) {
	row := []string{"SSW", "MM"}

	v := Text(row, 0)
	require.NotNil(t, v)
	assert.Equal(t, "SSW", *v)

	assert.Nil(t, Text(row, 1))
	assert.Nil(t, Text(row, -1))
	assert.Nil(t, Text(row, 5))
}
