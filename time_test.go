package crowd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/crowdchain/crowd/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero time as number": {
			raw:      "0",
			wantTime: 0,
		},
		"zero time as string": {
			raw:      `"1970-01-01T01:00:00+01:00"`,
			wantTime: 0,
		},
		"a time as string": {
			raw:      `"2019-04-04T11:35:40.89181085+02:00"`,
			wantTime: 1554370540,
		},
		"a time as number": {
			raw:      "1554370540",
			wantTime: 1554370540,
		},
		"negative number": {
			raw:     "-1",
			wantErr: errors.ErrInput,
		},
		"negative time as string": {
			raw:     `"1950-01-01T01:00:00+01:00"`,
			wantErr: errors.ErrInput,
		},
		"invalid string": {
			raw:     `"not a time string"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && got != tc.wantTime {
				t.Fatalf("unexpected time: %d", got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := AsUnixTime(time.Now())

	cases := map[string]struct {
		base  UnixTime
		delta time.Duration
		want  UnixTime
	}{
		"add a minute": {
			base:  now,
			delta: time.Minute,
			want:  now + 60,
		},
		"subtract a minute": {
			base:  now,
			delta: -time.Minute,
			want:  now - 60,
		},
		"ignore sub-second duration": {
			base:  now,
			delta: 999 * time.Millisecond,
			want:  now,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.base.Add(tc.delta); got != tc.want {
				t.Fatalf("unexpected result: %d", got)
			}
		})
	}
}

func TestUnixDurationUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantDur UnixDuration
		wantErr *errors.Error
	}{
		"number of seconds": {
			raw:     "123",
			wantDur: 123,
		},
		"duration string": {
			raw:     `"2m"`,
			wantDur: 120,
		},
		"negative duration string": {
			raw:     `"-2m"`,
			wantDur: -120,
		},
		"invalid string": {
			raw:     `"zzz"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && got != tc.wantDur {
				t.Fatalf("unexpected duration: %d", got)
			}
		})
	}
}
