package save

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

func TestManagerDegradedMode(t *testing.T) {
	sm := NewManager(nil)
	if sm.Records().Sessions != 1 {
		t.Fatalf("Sessions = %d, want 1", sm.Records().Sessions)
	}

	sm.RecordScore(5)
	sm.RecordScore(3)
	sm.CountSpawn()
	sm.CountContact()
	sm.CountContact()

	r := sm.Records()
	if r.BestScore != 5 {
		t.Fatalf("BestScore = %d, want 5", r.BestScore)
	}
	if r.TotalSpawned != 1 || r.TotalContacts != 2 {
		t.Fatalf("tallies = %+v", r)
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save in degraded mode must be a no-op, got %v", err)
	}
}

func testGdataManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	appName := fmt.Sprintf("bouncelab_test_%s_%d", name, time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return m
}

func TestManagerRoundTrip(t *testing.T) {
	m := testGdataManager(t, "roundtrip")
	if m == nil {
		t.Skip("gdata storage unavailable")
	}

	sm := NewManager(m)
	sm.RecordScore(7)
	sm.CountSpawn()
	if err := sm.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewManager(m)
	r := reloaded.Records()
	if r.BestScore != 7 {
		t.Fatalf("BestScore = %d, want 7", r.BestScore)
	}
	if r.TotalSpawned != 1 {
		t.Fatalf("TotalSpawned = %d, want 1", r.TotalSpawned)
	}
	if r.Sessions != 2 {
		t.Fatalf("Sessions = %d, want 2 after reload", r.Sessions)
	}
}
