// Package domain models University of Wyoming upper-air sounding reports.
//
// # Data Source
//
// Soundings are served by the University of Wyoming Department of Atmospheric
// Science at https://weather.uwyo.edu/cgi-bin/sounding. A request selects one
// station and a FROM/TO window of observation times. The TEXT:LIST output type
// returns an HTML page whose body is a <pre> block with the tabular profile
// followed by a block of station information and sounding indices.
//
// # Query Conventions
//
//	region  sounding map region, e.g. "europe" or "naconf"
//	TYPE    output type; always "TEXT:LIST" (sent URL-encoded as TEXT%3ALIST)
//	YEAR    four-digit year
//	MONTH   two-digit month, zero-padded
//	FROM    DDHH, day zero-padded followed by the synoptic hour ("00" or "12")
//	TO      DDHH, equal to FROM so that exactly one sounding is requested
//	STNM    WMO station number, e.g. "15614" (Sofia)
//
// # Report Text
//
// The cleaned report is the page with every markup tag removed, blank lines
// dropped and each line trimmed. The indices block ends with the line
//
//	Precipitable water [mm] for entire sounding: 12.34
//
// which acts as the stop marker. Text after the marker is discarded. A page
// that never reaches the marker (the station did not launch, or the archive has
// no data for that hour) carries no usable sounding and is rejected; see
// [Validate].
//
// # File Naming
//
// Each accepted report is stored as "<prefix>-DD-MM-YYYY.txt", one file per
// calendar day. See [Filename].
package domain
