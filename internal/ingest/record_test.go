package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLaunchTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		clock   string
		want    time.Time
		wantErr string
	}{
		{
			name: "date only becomes utc midnight",
			date: "2020-01-01",
			want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date plus time combine into one instant",
			date:  "2020-01-01",
			clock: "12:30:00",
			want:  time.Date(2020, 1, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "space separated datetime in date field",
			date: "2020-06-04 05:21:00",
			want: time.Date(2020, 6, 4, 5, 21, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset is adjusted to utc",
			date: "2020-01-01T02:00:00+02:00",
			want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "unparsable date is rejected",
			date:    "Fri Aug 07, 2020",
			wantErr: ReasonInvalidDateTime,
		},
		{
			name:    "empty date is rejected",
			date:    "",
			wantErr: ReasonInvalidDateTime,
		},
		{
			name:    "garbage time component is rejected",
			date:    "2020-01-01",
			clock:   "noon",
			wantErr: ReasonInvalidDateTime,
		},
		{
			name:    "fractional seconds in the time component are rejected",
			date:    "2020-01-01",
			clock:   "12:30:00.5",
			wantErr: ReasonInvalidDateTime,
		},
		{
			name:    "unpadded hour in the time component is rejected",
			date:    "2020-01-01",
			clock:   "9:30:00",
			wantErr: ReasonInvalidDateTime,
		},
		{
			name:    "zone offset in the time component is rejected",
			date:    "2020-01-01",
			clock:   "12:30:00+02:00",
			wantErr: ReasonInvalidDateTime,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RawRecord{
				Rocket:  "Falcon 9",
				Mission: "Starlink-1",
				Date:    tt.date,
				Time:    tt.clock,
			}
			cand, err := Normalize(rec)
			if tt.wantErr != "" {
				var rej *RejectError
				require.ErrorAs(t, err, &rej)
				assert.Equal(t, tt.wantErr, rej.Reason)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(cand.LaunchDateTime), "got %s", cand.LaunchDateTime)
			assert.Equal(t, time.UTC, cand.LaunchDateTime.Location())
		})
	}
}

func TestNormalizeRequiredFields(t *testing.T) {
	base := RawRecord{Rocket: "Falcon 9", Mission: "Starlink-1", Date: "2020-01-01"}

	blankRocket := base
	blankRocket.Rocket = "   "
	_, err := Normalize(blankRocket)
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonMissingRequiredField, rej.Reason)

	blankMission := base
	blankMission.Mission = ""
	_, err = Normalize(blankMission)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonMissingRequiredField, rej.Reason)
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  *float64
	}{
		{"currency symbol and separators stripped", "$50,000,000", ptr(50000000.0)},
		{"plain decimal", "62.5", ptr(62.5)},
		{"empty means undisclosed", "", nil},
		{"whitespace means undisclosed", "  ", nil},
		{"unparsable is lenient nil, not a rejection", "N/A", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := Normalize(RawRecord{
				Rocket:  "Falcon 9",
				Mission: "Starlink-1",
				Date:    "2020-01-01",
				Price:   tt.price,
			})
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, cand.Price)
			} else {
				require.NotNil(t, cand.Price)
				assert.InDelta(t, *tt.want, *cand.Price, 1e-9)
			}
		})
	}
}

func TestNormalizeRocketActive(t *testing.T) {
	cand, err := Normalize(RawRecord{Rocket: "Falcon 9", Mission: "M", Date: "2020-01-01", RocketStatus: "active"})
	require.NoError(t, err)
	assert.True(t, cand.RocketActive)

	cand, err = Normalize(RawRecord{Rocket: "Saturn V", Mission: "M", Date: "1969-07-16", RocketStatus: "Retired"})
	require.NoError(t, err)
	assert.False(t, cand.RocketActive)
}

func ptr(v float64) *float64 { return &v }
