package validation

import (
	"testing"

	"github.com/julianstephens/focusflow/internal/models"
)

func TestTaskName(t *testing.T) {
	if err := TaskName("write report"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	for _, bad := range []string{"", "   ", "\t"} {
		if err := TaskName(bad); err == nil {
			t.Errorf("blank name %q accepted", bad)
		}
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		minutes int
		wantErr bool
	}{
		{1, false},
		{25, false},
		{120, false},
		{0, true},
		{-5, true},
		{121, true},
	}

	for _, tt := range tests {
		err := Duration(tt.minutes)
		if (err != nil) != tt.wantErr {
			t.Errorf("Duration(%d) error = %v, wantErr %v", tt.minutes, err, tt.wantErr)
		}
	}
}

func TestTone(t *testing.T) {
	for _, good := range []string{"calm", "fun", "firm"} {
		if err := Tone(good); err != nil {
			t.Errorf("Tone(%q) rejected: %v", good, err)
		}
	}
	for _, bad := range []string{"", "angry", "CALM"} {
		if err := Tone(bad); err == nil {
			t.Errorf("Tone(%q) accepted", bad)
		}
	}
}

func TestSettings(t *testing.T) {
	s := models.DefaultSettings()
	if err := Settings(s); err != nil {
		t.Errorf("default settings rejected: %v", err)
	}

	s.Timezone = "Not/AZone"
	if err := Settings(s); err == nil {
		t.Error("invalid timezone accepted")
	}

	s = models.DefaultSettings()
	s.CadenceMin = 0
	if err := Settings(s); err == nil {
		t.Error("zero cadence accepted")
	}
}
