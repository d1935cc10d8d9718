package testsupport_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-datatable/pkg/testsupport"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	t.Setenv("UPDATE_GOLDENS", "1")
	testsupport.WriteGolden(t, path, map[string][]string{"a": {"x"}})

	var got map[string][]string
	testsupport.MustLoadJSON(t, path, &got)
	if diff := testsupport.CompareGolden(map[string][]string{"a": {"x"}}, got); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}

	testsupport.AssertJSONGolden(t, path, map[string][]string{"b": {"y"}})

	if err := testsupport.LoadJSON("", &got); err == nil {
		t.Fatalf("expected missing path error")
	}
	if err := testsupport.LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &got); err == nil {
		t.Fatalf("expected read error")
	}
}
