package audio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Skyluker4/Audfill/internal/logger"
)

func captureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logger.New(false)
	log.SetOutput(&buf)
	return log, &buf
}

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name     string
		opts     WindowOptions
		want     Window
		wantWarn string
	}{
		{
			name: "defaults",
			want: Window{Length: DefaultLength},
		},
		{
			name: "start only",
			opts: WindowOptions{Start: "1:00"},
			want: Window{Start: time.Minute, HasStart: true, Length: DefaultLength},
		},
		{
			name: "start and end",
			opts: WindowOptions{Start: "1:00", End: "1:10.500"},
			want: Window{Start: time.Minute, HasStart: true, Length: 10500 * time.Millisecond, Explicit: true},
		},
		{
			name: "length only",
			opts: WindowOptions{Length: "12"},
			want: Window{Length: 12 * time.Second, Explicit: true},
		},
		{
			name:     "end without start",
			opts:     WindowOptions{End: "0:40"},
			want:     Window{Length: DefaultLength},
			wantWarn: "no start",
		},
		{
			name:     "end and length",
			opts:     WindowOptions{Start: "5", End: "30", Length: "10"},
			want:     Window{Start: 5 * time.Second, HasStart: true, Length: 10 * time.Second, Explicit: true},
			wantWarn: "length will be used",
		},
		{
			name:     "too long",
			opts:     WindowOptions{Length: "40"},
			want:     Window{Length: MaxLength, Explicit: true},
			wantWarn: "truncated",
		},
		{
			name:     "end before start",
			opts:     WindowOptions{Start: "30", End: "20"},
			want:     Window{Start: 30 * time.Second, HasStart: true, Length: DefaultLength, Explicit: true},
			wantWarn: "less than or equal to zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := captureLogger()
			got := ResolveWindow(tt.opts, log)
			if got != tt.want {
				t.Errorf("ResolveWindow() = %+v, want %+v", got, tt.want)
			}
			if tt.wantWarn == "" && buf.Len() > 0 {
				t.Errorf("unexpected output: %q", buf.String())
			}
			if tt.wantWarn != "" && !strings.Contains(buf.String(), tt.wantWarn) {
				t.Errorf("log %q does not mention %q", buf.String(), tt.wantWarn)
			}
		})
	}
}

func TestWindowCustom(t *testing.T) {
	if (WindowOptions{}).Custom() {
		t.Error("empty options reported as custom")
	}
	if !(WindowOptions{End: "1"}).Custom() {
		t.Error("end-only options not reported as custom")
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name     string
		window   Window
		total    time.Duration
		want     Cut
		wantWarn bool
	}{
		{
			name:   "centered",
			window: Window{Length: 18 * time.Second},
			total:  3 * time.Minute,
			want:   Cut{Start: 81 * time.Second, Length: 18 * time.Second},
		},
		{
			name:   "explicit start",
			window: Window{Start: 10 * time.Second, HasStart: true, Length: 18 * time.Second},
			total:  3 * time.Minute,
			want:   Cut{Start: 10 * time.Second, Length: 18 * time.Second},
		},
		{
			name:     "start past end",
			window:   Window{Start: 5 * time.Minute, HasStart: true, Length: 20 * time.Second},
			total:    time.Minute,
			want:     Cut{Start: 20 * time.Second, Length: 20 * time.Second},
			wantWarn: true,
		},
		{
			name:   "short sample default length",
			window: Window{Length: DefaultLength},
			total:  10 * time.Second,
			want:   Cut{Length: 10 * time.Second, Whole: true},
		},
		{
			name:     "short sample explicit length",
			window:   Window{Length: 20 * time.Second, Explicit: true},
			total:    10 * time.Second,
			want:     Cut{Length: 10 * time.Second, Whole: true},
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := captureLogger()
			got := tt.window.Plan(tt.total, log)
			if got != tt.want {
				t.Errorf("Plan() = %+v, want %+v", got, tt.want)
			}
			if warned := strings.Contains(buf.String(), "WARNING"); warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v (log %q)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}
