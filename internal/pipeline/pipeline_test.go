package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ginjaninja78/samcut/internal/config"
	"github.com/ginjaninja78/samcut/internal/input"
	"github.com/ginjaninja78/samcut/internal/output"
	"github.com/ginjaninja78/samcut/internal/record"
)

const (
	rec1 = "r1\t0\tchr1\t1\t60\t2M\t*\t0\t0\tAC\tII\tNM:i:0"
	rec2 = "r2\t16\tchr2\t5\t60\t2M\t*\t0\t0\tGT\tII"
	bad  = "r3\t0\tchr1\t9\t60"
)

func run(t *testing.T, cfg *config.Config, in string) (string, Result, error) {
	t.Helper()
	var out bytes.Buffer
	sink := output.NewDelimitedWriter(&out, cfg.Delimiter())
	p := New(cfg, input.NewTextSource(strings.NewReader(in)), sink, nil)
	res, err := p.Run(context.Background())
	if cerr := sink.Close(); cerr != nil {
		t.Fatalf("sink Close() = %v", cerr)
	}
	return out.String(), res, err
}

func TestRunHeaderLinesDoNotAdvanceIndex(t *testing.T) {
	cfg := config.Default()
	cfg.Fields = []string{"n", "qname"}

	out, res, err := run(t, cfg, "@HD\tVN:1.6\n@SQ\tSN:chr1\tLN:100\n"+rec1+"\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "1\tr1\n" {
		t.Errorf("output = %q, want %q", out, "1\tr1\n")
	}
	if res.Stats.HeaderLines != 2 || res.Stats.RecordsWritten != 1 || res.Stats.LinesRead != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRunDefaultFieldsReproduceRecord(t *testing.T) {
	cfg := config.Default()

	out, res, err := run(t, cfg, rec2+"\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != rec2+"\n" {
		t.Errorf("output = %q, want %q", out, rec2+"\n")
	}
	if len(res.Fields) != record.MandatoryCount {
		t.Errorf("expanded %d fields, want %d", len(res.Fields), record.MandatoryCount)
	}
}

func TestRunHeaderRowAndFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Header = true
	cfg.Delim = ","
	cfg.Fill = "-"
	cfg.Fields = []string{"n", "reverse", "NM", "flags"}

	out, _, err := run(t, cfg, rec1+"\n"+rec2+"\n")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "n,reverse,NM,flags\n1,0,0,\n2,1,-,reverse\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRunAbort(t *testing.T) {
	cfg := config.Default()
	cfg.Fields = []string{"qname"}

	out, res, err := run(t, cfg, rec1+"\n"+bad+"\n"+rec2+"\n")

	var ferr *record.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Run() error = %v, want *record.FormatError", err)
	}
	if ferr.Kind != record.TooFewFields || ferr.Line != 2 || ferr.Found != 5 {
		t.Errorf("FormatError = %+v", ferr)
	}
	if !errors.Is(err, record.ErrTooFewFields) {
		t.Errorf("errors.Is(err, ErrTooFewFields) = false")
	}
	if out != "r1\n" {
		t.Errorf("output before abort = %q", out)
	}
	if res.Stats.RecordsWritten != 1 {
		t.Errorf("RecordsWritten = %d, want 1", res.Stats.RecordsWritten)
	}
}

func TestRunSkip(t *testing.T) {
	rejectLog := filepath.Join(t.TempDir(), "rejected.log")

	cfg := config.Default()
	cfg.Fields = []string{"n", "qname"}
	cfg.OnError = config.PolicySkip
	cfg.RejectLog = rejectLog

	in := rec1 + "\n" + bad + "\n" + "r4\tx\tchr1\t1\t60\t2M\t*\t0\t0\tAC\tII\n" + rec2 + "\n"
	out, res, err := run(t, cfg, in)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "1\tr1\n2\tr2\n" {
		t.Errorf("output = %q", out)
	}
	if res.Stats.LinesSkipped != 2 || len(res.Rejected) != 2 {
		t.Fatalf("skipped %d, rejected %d", res.Stats.LinesSkipped, len(res.Rejected))
	}
	if res.Rejected[0].LineNumber != 2 || res.Rejected[0].Kind != "TooFewFields" {
		t.Errorf("Rejected[0] = %+v", res.Rejected[0])
	}
	if res.Rejected[1].LineNumber != 3 || res.Rejected[1].Kind != "InvalidFlagValue" {
		t.Errorf("Rejected[1] = %+v", res.Rejected[1])
	}

	data, err := os.ReadFile(rejectLog)
	if err != nil {
		t.Fatalf("read reject log: %v", err)
	}
	if !strings.Contains(string(data), "\t"+bad+"\n") {
		t.Errorf("reject log missing raw line:\n%s", data)
	}
}

func TestRunMalformedTag(t *testing.T) {
	cfg := config.Default()
	_, _, err := run(t, cfg, rec2+"\tXX:i\n")
	if !errors.Is(err, record.ErrMalformedOptionalTag) {
		t.Errorf("Run() error = %v, want MalformedOptionalTag", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := New(config.Default(), input.NewTextSource(strings.NewReader(rec1+"\n")), output.NewDelimitedWriter(&out, '\t'), nil)
	if _, err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunReadErrorKeepsRejectLog(t *testing.T) {
	rejectLog := filepath.Join(t.TempDir(), "rejected.log")

	cfg := config.Default()
	cfg.OnError = config.PolicySkip
	cfg.RejectLog = rejectLog

	readErr := errors.New("device gone")
	in := io.MultiReader(strings.NewReader(rec1+"\n"+bad+"\n"), iotest.ErrReader(readErr))

	var out bytes.Buffer
	p := New(cfg, input.NewTextSource(in), output.NewDelimitedWriter(&out, '\t'), nil)
	res, err := p.Run(context.Background())
	if !errors.Is(err, readErr) {
		t.Fatalf("Run() error = %v, want %v", err, readErr)
	}
	if res.Stats.LinesSkipped != 1 {
		t.Errorf("LinesSkipped = %d, want 1", res.Stats.LinesSkipped)
	}

	data, rerr := os.ReadFile(rejectLog)
	if rerr != nil {
		t.Fatalf("reject log not written: %v", rerr)
	}
	if !strings.Contains(string(data), "2\tTooFewFields\t") {
		t.Errorf("reject log = %q", data)
	}
}

func TestRunFailureWithoutRejectsWritesNoLog(t *testing.T) {
	rejectLog := filepath.Join(t.TempDir(), "rejected.log")

	cfg := config.Default()
	cfg.OnError = config.PolicySkip
	cfg.RejectLog = rejectLog

	in := io.MultiReader(strings.NewReader(rec1+"\n"), iotest.ErrReader(errors.New("device gone")))
	var out bytes.Buffer
	p := New(cfg, input.NewTextSource(in), output.NewDelimitedWriter(&out, '\t'), nil)
	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil")
	}
	if _, err := os.Stat(rejectLog); !os.IsNotExist(err) {
		t.Errorf("reject log exists after a failed run with no rejects (stat err = %v)", err)
	}
}
