package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("samcut_{date}_{uuid}", nil, ".xlsx")
	re := regexp.MustCompile(`^samcut_\d{8}_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.xlsx$`)
	if !re.MatchString(name) {
		t.Errorf("GenerateOutputFileName() = %q", name)
	}

	if a, b := GenerateOutputFileName("{uuid}", nil, ""), GenerateOutputFileName("{uuid}", nil, ""); a == b {
		t.Errorf("two generated names are equal: %q", a)
	}
}

func TestGenerateOutputFileNameParams(t *testing.T) {
	got := GenerateOutputFileName("{sample}.XLSX", map[string]string{"sample": "NA12878"}, ".xlsx")
	if got != "NA12878.XLSX" {
		t.Errorf("GenerateOutputFileName() = %q", got)
	}
}

func TestWriteRejectLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rejected.log")
	entries := []RejectEntry{
		{LineNumber: 3, Kind: "TooFewFields", Message: "too few fields", Line: "a\tb"},
		{LineNumber: 9, Kind: "InvalidFlagValue", Message: "invalid flag integer", Line: "r\tx"},
	}

	if err := WriteRejectLog(entries, path, "in.sam"); err != nil {
		t.Fatalf("WriteRejectLog() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read reject log: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"# input: in.sam",
		"# rejected: 2",
		"3\tTooFewFields\ttoo few fields\ta\tb\n",
		"9\tInvalidFlagValue\tinvalid flag integer\tr\tx\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("reject log missing %q:\n%s", want, text)
		}
	}
}

func TestFileChecks(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) || !FileExists(dir) {
		t.Error("FileExists() = false for existing paths")
	}
	if FileExists(filepath.Join(dir, "absent")) {
		t.Error("FileExists() = true for a missing path")
	}
	if !IsDir(dir) || IsDir(file) {
		t.Error("IsDir() misclassified")
	}
}
