package prefabs

import (
	"strings"
	"testing"

	"github.com/tannerb/bouncelab/gate"
)

func TestGateSpecConfig(t *testing.T) {
	cases := []struct {
		name    string
		spec    GateSpec
		want    gate.TimingMode
		wantErr string
	}{
		{"empty_timing_is_none", GateSpec{WatchedTag: "Ball"}, gate.TimingNone, ""},
		{"none", GateSpec{Timing: "none"}, gate.TimingNone, ""},
		{"cooldown", GateSpec{Timing: "cooldown", Cooldown: 0.5}, gate.TimingCooldown, ""},
		{"initial_contact", GateSpec{Timing: "initial_contact"}, gate.TimingInitialContact, ""},
		{"unknown", GateSpec{Timing: "sometimes"}, 0, "unknown gate timing"},
		{"negative_strength", GateSpec{MinStrength: -1}, 0, "negative min_strength"},
		{"negative_cooldown", GateSpec{Timing: "cooldown", Cooldown: -2}, 0, "negative cooldown"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := c.spec.Config()
			if c.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), c.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Config: %v", err)
			}
			if cfg.Timing != c.want {
				t.Fatalf("Timing = %v, want %v", cfg.Timing, c.want)
			}
			if cfg.WatchedTag != c.spec.WatchedTag {
				t.Fatalf("WatchedTag = %q, want %q", cfg.WatchedTag, c.spec.WatchedTag)
			}
		})
	}
}

func TestLoadLevelSpecEmbedded(t *testing.T) {
	spec, err := LoadLevelSpec("")
	if err != nil {
		t.Fatalf("LoadLevelSpec: %v", err)
	}
	if spec.Name != "playground" {
		t.Fatalf("Name = %q, want playground", spec.Name)
	}
	if spec.Arena.Width <= 0 || spec.Arena.Height <= 0 {
		t.Fatalf("arena size not loaded: %+v", spec.Arena)
	}
	if len(spec.Bumpers) == 0 || len(spec.Pickups) == 0 {
		t.Fatalf("expected bumpers and pickups in the default level")
	}
	if _, err := spec.Paddle.Gate.Config(); err != nil {
		t.Fatalf("paddle gate config: %v", err)
	}
	for i, b := range spec.Bumpers {
		cfg, err := b.Gate.Config()
		if err != nil {
			t.Fatalf("bumper %d gate config: %v", i, err)
		}
		if cfg.Timing != gate.TimingCooldown {
			t.Fatalf("bumper %d timing = %v, want cooldown", i, cfg.Timing)
		}
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[LevelSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	for _, name := range []string{"contact_log.tengo", "scripts/contact_log.tengo", "prefabs/scripts/contact_log.tengo"} {
		data, err := LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
		if !strings.Contains(string(data), "on_contact") {
			t.Fatalf("script %q does not define on_contact", name)
		}
	}
}
