package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soundingPage = `<HTML>
<TITLE>University of Wyoming - Radiosonde Data</TITLE>
<BODY BGCOLOR="white">
<H2>15614 LBSF Sofia Observations at 12Z 22 Jan 2026</H2>
<PRE>
-----------------------------------------------------------------------------
   PRES   HGHT   TEMP   DWPT   RELH   MIXR   DRCT   SKNT   THTA   THTE   THTV
    hPa     m      C      C      %    g/kg    deg   knot     K      K      K
-----------------------------------------------------------------------------
  946.0    588    1.2   -3.8     69   3.04    110      4  279.6  288.4  280.1
  925.0    766   -0.1   -4.6     72   2.89    115      6  280.0  288.4  280.5
</PRE><H3>Station information and sounding indices</H3><PRE>
                         Station identifier: LBSF
                             Station number: 15614
                           Observation time: 260122/1200
     Precipitable water [mm] for entire sounding: 9.87
</PRE>
<H3>Description of the sounding columns</H3>
</BODY></HTML>
`

const soundingText = `15614 LBSF Sofia Observations at 12Z 22 Jan 2026
-----------------------------------------------------------------------------
PRES   HGHT   TEMP   DWPT   RELH   MIXR   DRCT   SKNT   THTA   THTE   THTV
hPa     m      C      C      %    g/kg    deg   knot     K      K      K
-----------------------------------------------------------------------------
946.0    588    1.2   -3.8     69   3.04    110      4  279.6  288.4  280.1
925.0    766   -0.1   -4.6     72   2.89    115      6  280.0  288.4  280.5
Station information and sounding indices
Station identifier: LBSF
Station number: 15614
Observation time: 260122/1200
Precipitable water [mm] for entire sounding: 9.87
`

func TestClean_StripsTagsAndTruncatesAtMarker(t *testing.T) {
	got, ok := Clean(soundingPage, DefaultStopMarker)
	require.True(t, ok)

	// The title line survives tag removal; everything after the marker is cut.
	want := "University of Wyoming - Radiosonde Data\n" + soundingText
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "Description of the sounding columns")
	assert.NotContains(t, got, "<")
}

func TestClean_Idempotent(t *testing.T) {
	once, ok := Clean(soundingPage, DefaultStopMarker)
	require.True(t, ok)

	twice, ok := Clean(once, DefaultStopMarker)
	require.True(t, ok)

	assert.Equal(t, once, twice)
}

func TestClean_MarkerLineIsKept(t *testing.T) {
	body := "a\n  " + DefaultStopMarker + ": 1.0  \nb\n"
	got, ok := Clean(body, DefaultStopMarker)
	require.True(t, ok)
	assert.Equal(t, "a\n"+DefaultStopMarker+": 1.0\n", got)
}

func TestClean_HandlesCRLF(t *testing.T) {
	body := "<PRE>\r\nline one\r\n\r\n" + DefaultStopMarker + ": 2.0\r\n</PRE>\r\n"
	got, ok := Clean(body, DefaultStopMarker)
	require.True(t, ok)
	assert.Equal(t, "line one\n"+DefaultStopMarker+": 2.0\n", got)
}

func TestClean_BareCR(t *testing.T) {
	body := "header\r" + DefaultStopMarker + ": 1.0\rtrailing junk\r"
	got, ok := Clean(body, DefaultStopMarker)
	require.True(t, ok)
	assert.Equal(t, "header\n"+DefaultStopMarker+": 1.0\n", got)
}

func TestClean_UnicodeLineSeparators(t *testing.T) {
	body := "header\u2028" + DefaultStopMarker + ": 1.0\u2029trailing\u0085junk\f"
	got, ok := Clean(body, DefaultStopMarker)
	require.True(t, ok)
	assert.Equal(t, "header\n"+DefaultStopMarker+": 1.0\n", got)
}

func TestClean_NoContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace only", " \n\t\n  \n"},
		{"tags only", "<HTML>\n<BODY></BODY>\n</HTML>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clean(tt.body, DefaultStopMarker)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestClean_MissingMarkerKeepsAllLines(t *testing.T) {
	body := "<P>Can't get 15614 LBSF Sofia Observations at 12Z 23 Jan 2026.</P>\n"
	got, ok := Clean(body, DefaultStopMarker)
	require.True(t, ok)
	assert.Equal(t, "Can't get 15614 LBSF Sofia Observations at 12Z 23 Jan 2026.\n", got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cleaned string
		wantErr bool
	}{
		{"complete sounding", soundingText, false},
		{"empty", "", true},
		{"partial page without marker", "Can't get 15614 LBSF Sofia Observations.\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cleaned, DefaultStopMarker)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoSounding)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_RejectsCleanOutputWithoutMarker(t *testing.T) {
	cleaned, ok := Clean("<PRE>\n946.0 588 1.2\n925.0 766 -0.1\n</PRE>", DefaultStopMarker)
	require.True(t, ok)
	require.NotEmpty(t, cleaned)

	assert.ErrorIs(t, Validate(cleaned, DefaultStopMarker), ErrNoSounding)
}
