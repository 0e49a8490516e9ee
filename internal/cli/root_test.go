package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, int, error) {
	t.Helper()
	t.Setenv("APP_CONFIG", "")
	chdir(t, t.TempDir())

	var code int
	var out bytes.Buffer
	cmd := newRootCommand(&code)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), code, err
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	out, code, err := runRoot(t, "config", "--dataset", "films.db", "--format", "SQLite", "--table", "films", "-n", "5")
	if err != nil || code != 0 {
		t.Fatalf("err = %v, code = %d", err, code)
	}
	for _, want := range []string{"path: films.db", "format: sqlite", "table: films", "limit: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecommendRequiresTitle(t *testing.T) {
	if _, _, err := runRoot(t, "recommend"); err == nil {
		t.Fatal("expected error without a title")
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, _, err := runRoot(t, "chat"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRecommendMissingDataset(t *testing.T) {
	t.Setenv("APP_LOG_TO_FILE", "false")
	_, code, err := runRoot(t, "recommend", "--dataset", "absent.csv", "Alien")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
}
