package clinic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `D  Lim  Smith  2/2/1970  CLARK  FAMILY  NPI123
D  Gary  Johnson  3/3/1965  PRINCETON  ALLERGIST  NPI456
T  Ana  Lee  3/3/1980  CLARK  150
T  Ben  Boone  4/4/1985  EDISON  125
`

func TestLoadRoster(t *testing.T) {
	roster, err := LoadRoster(strings.NewReader(sampleRoster))
	require.NoError(t, err)
	require.Len(t, roster.Providers, 4)
	require.Len(t, roster.Doctors, 2)
	require.Len(t, roster.Technicians, 2)

	doc := roster.DoctorByNPI("NPI123")
	require.NotNil(t, doc)
	assert.Equal(t, "Lim", doc.Profile().First)
	assert.Equal(t, Family, doc.Specialty())
	assert.Equal(t, "CLARK", doc.Location().City)
	assert.Equal(t, 250, doc.Charge())

	assert.Nil(t, roster.DoctorByNPI("NOPE"))
}

func TestLoadRosterRingOrderIsReverseFileOrder(t *testing.T) {
	roster, err := LoadRoster(strings.NewReader(sampleRoster))
	require.NoError(t, err)
	assert.Equal(t, "Ben", roster.Technicians[0].Profile().First)
	assert.Equal(t, "Ana", roster.Technicians[1].Profile().First)
}

func TestLoadRosterSkipsMalformedLines(t *testing.T) {
	text := sampleRoster +
		"X  Who  Knows  1/1/1990  CLARK  5\n" + // unknown type
		"D  Short  Line\n" + // missing fields
		"T  Bad  Rate  5/5/1985  CLARK  lots\n" + // non-numeric rate
		"T  Bad  Loc  5/5/1985  NOWHERE  90\n" // unknown location

	roster, err := LoadRoster(strings.NewReader(text))
	require.Error(t, err)
	// All good lines survive.
	assert.Len(t, roster.Providers, 4)
	assert.Len(t, roster.Technicians, 2)
	// Each bad line is reported with its line number.
	for _, n := range []string{"line 5", "line 6", "line 7", "line 8"} {
		assert.Contains(t, err.Error(), n)
	}
}

func TestSortedProviders(t *testing.T) {
	roster, err := LoadRoster(strings.NewReader(sampleRoster))
	require.NoError(t, err)
	sorted := roster.SortedProviders()
	require.Len(t, sorted, 4)
	lasts := make([]string, len(sorted))
	for i, p := range sorted {
		lasts[i] = p.Profile().Last
	}
	assert.Equal(t, []string{"Boone", "Johnson", "Lee", "Smith"}, lasts)
}
