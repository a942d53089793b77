package game

import (
	"math"
	"testing"
)

func TestRecordResponseTimeFirstSample(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)

	ema := RecordResponseTime(app, s, 2.5)
	if ema != 2.5 {
		t.Errorf("First sample must initialize the EMA exactly, got %v", ema)
	}
	if !s.EMAInitialized || s.EMAResponseTime != 2.5 {
		t.Errorf("Session EMA not initialized: %+v", s)
	}
	if len(s.ResponseTimeHistory) != 1 || s.ResponseTimeHistory[0] != 2.5 {
		t.Errorf("History not recorded: %v", s.ResponseTimeHistory)
	}
}

func TestRecordResponseTimeEMA(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)

	RecordResponseTime(app, s, 2.0)
	ema := RecordResponseTime(app, s, 1.0)

	want := 0.2*1.0 + 0.8*2.0
	if math.Abs(ema-want) > 1e-9 {
		t.Errorf("Expected EMA %v, got %v", want, ema)
	}
}

func TestRecordResponseTimeClampsToMinimum(t *testing.T) {
	app := testApp(stubOracle{})
	s := testSession(5)

	for _, rt := range []float64{0, -3, 0.05} {
		s.EMAInitialized = false
		s.ResponseTimeHistory = nil
		ema := RecordResponseTime(app, s, rt)
		if ema != 0.1 {
			t.Errorf("Response time %v should clamp to 0.1, got %v", rt, ema)
		}
		if s.ResponseTimeHistory[0] != 0.1 {
			t.Errorf("History should record the clamped value, got %v", s.ResponseTimeHistory[0])
		}
	}
}
