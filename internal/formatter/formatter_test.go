package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDateFormats(t *testing.T) {
	ts := time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2025", Date(&ts))
	assert.Equal(t, "Mar 5, 2025 2:30 PM", DateTime(&ts))

	morning := time.Date(2025, time.December, 25, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "Dec 25, 2025 9:05 AM", DateTime(&morning))

	assert.Equal(t, "", Date(nil))
	zero := time.Time{}
	assert.Equal(t, "", DateTime(&zero))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, UnknownStudent, OrDefault(nil, UnknownStudent))
	assert.Equal(t, UnspecifiedItem, OrDefault(strPtr("   "), UnspecifiedItem))
	assert.Equal(t, "Ana", OrDefault(strPtr(" Ana "), UnknownStudent))
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"costume":    "Costume",
		"INSTRUMENT": "Instrument",
		" props ":    "Props",
		"éclairage":  "Éclairage",
	}
	for in, want := range cases {
		assert.Equal(t, want, Capitalize(in), in)
	}
}

func TestDesiredCulturalGroup(t *testing.T) {
	assert.Equal(t, "Indak Yaman Dance Varsity", DesiredCulturalGroup("dance: Indak Yaman Dance Varsity"))
	assert.Equal(t, "Coro: Batangueño", DesiredCulturalGroup("music:Coro: Batangueño"))
	assert.Equal(t, "Melophiles", DesiredCulturalGroup("Melophiles"))
	assert.Equal(t, "", DesiredCulturalGroup("theatre:"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(66.666666))
	assert.Equal(t, 33.33, Round2(33.333333))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 100.0, Round2(100))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ana Cruz Reyes", FullName("Ana", strPtr("Cruz"), "Reyes"))
	assert.Equal(t, "Ana Reyes", FullName("Ana", nil, "Reyes"))
	assert.Equal(t, "Reyes", FullName(" ", strPtr(""), "Reyes"))
}
