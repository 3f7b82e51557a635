package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type result struct {
	out    string
	errOut string
	err    error
}

// resetFlags restores every package-level flag variable, since rootCmd is
// shared between test runs
func resetFlags() {
	cfgFile, logLevel, logFormat = "", "", ""
	verbose, lexOnly = false, false
	parseFormat, parseRecord = "", false
	lexTable = false
	replPlain, replQuiet, replRecord = false, false, false
	watchDebounce, watchOnce, watchTrees = 0, false, false
	historySource, historySession, historyKind = "", "", ""
	historyErrors, historyStats = false, false
	historySince, historyPrune = 0, 0
	historyLimit = 20
	doctorJSON = false
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// writeConfig writes a config whose history lives in dir
func writeConfig(t *testing.T, dir string, historyEnabled bool) string {
	t.Helper()
	content := fmt.Sprintf(`[general]
log_level = "error"

[history]
enabled = %t
path = %q
`, historyEnabled, filepath.Join(dir, "history.db"))
	return writeFile(t, dir, "fragment.toml", content)
}

func execute(t *testing.T, config, stdin string, args ...string) result {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--config", config))

	err := rootCmd.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestParse_Text(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "prog.fr", "extern sin(x)\ndef f(a) a*sin(a)\n")

	r := execute(t, cfg, "", "parse", src)
	if r.err != nil {
		t.Fatalf("parse error = %v\n%s", r.err, r.errOut)
	}
	for _, want := range []string{"FunctionPrototype", "Name: sin", "FunctionDefinition", "Operator: *", "Callee: sin"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("output missing %q:\n%s", want, r.out)
		}
	}
	if strings.Contains(r.out, "== ") {
		t.Errorf("single file printed a header:\n%s", r.out)
	}
}

func TestRoot_FilesParse(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	a := writeFile(t, dir, "a.fr", "1+2")
	b := writeFile(t, dir, "b.fr", "def g() 3")

	r := execute(t, cfg, "", a, b)
	if r.err != nil {
		t.Fatalf("root error = %v", r.err)
	}
	if !strings.Contains(r.out, "== "+a+" ==") || !strings.Contains(r.out, "== "+b+" ==") {
		t.Errorf("missing file headers:\n%s", r.out)
	}
	if !strings.Contains(r.out, "Params: (none)") {
		t.Errorf("missing zero-parameter prototype:\n%s", r.out)
	}
}

func TestParse_Failures(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	good := writeFile(t, dir, "good.fr", "def f(x) x")
	bad := writeFile(t, dir, "bad.fr", "def f(x) x\ndef (y) y")

	r := execute(t, cfg, "", "parse", good, bad)
	if r.err == nil {
		t.Fatal("parse error = nil, want failure")
	}
	if !strings.Contains(r.err.Error(), "1 of 2 file(s) failed") {
		t.Errorf("error = %q", r.err.Error())
	}
	if !strings.Contains(r.errOut, bad+":1: ") {
		t.Errorf("diagnostic missing line 1 location:\n%s", r.errOut)
	}
	// Constructs before the error are still printed
	if n := strings.Count(r.out, "FunctionDefinition"); n != 2 {
		t.Errorf("printed definitions = %d, want 2:\n%s", n, r.out)
	}
}

func TestParse_JSON(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "prog.fr", "def f(x) x+1; f(2)")

	r := execute(t, cfg, "", "parse", "--format", "json", src)
	if r.err != nil {
		t.Fatalf("parse error = %v", r.err)
	}

	var reports []unitReport
	if err := json.Unmarshal([]byte(r.out), &reports); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, r.out)
	}
	if len(reports) != 1 || len(reports[0].Constructs) != 2 {
		t.Fatalf("reports = %+v", reports)
	}
	if got := reports[0].Constructs[0].Prototype.Name; got != "f" {
		t.Errorf("first prototype name = %q, want f", got)
	}
	if !reports[0].Constructs[1].Anonymous {
		t.Error("second construct not anonymous")
	}
}

func TestParse_YAMLWithError(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "prog.fr", "extern g(a b)\n(1")

	r := execute(t, cfg, "", "parse", "-f", "yaml", src)
	if r.err == nil {
		t.Fatal("parse error = nil, want failure")
	}

	var reports []unitReport
	if err := yaml.Unmarshal([]byte(r.out), &reports); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, r.out)
	}
	if len(reports) != 1 || len(reports[0].Constructs) != 1 {
		t.Fatalf("reports = %+v", reports)
	}
	if !strings.HasPrefix(reports[0].Error, src+":1: ") {
		t.Errorf("error = %q", reports[0].Error)
	}
}

func TestParse_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "prog.fr", "1")

	r := execute(t, cfg, "", "parse", "--format", "xml", src)
	if r.err == nil || !strings.Contains(r.err.Error(), "unknown output format") {
		t.Errorf("error = %v, want unknown output format", r.err)
	}
}

func TestLex(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "lex.fr", "def f(x)\n  x+1")

	r := execute(t, cfg, "", "lex", src)
	if r.err != nil {
		t.Fatalf("lex error = %v", r.err)
	}
	want := []string{
		"0:0 DEF",
		"0:4 IDENT(f)",
		"0:5 LPAREN",
		"0:6 IDENT(x)",
		"0:7 RPAREN",
		"1:2 IDENT(x)",
		"1:3 OP(+)",
		"1:4 NUMBER(1)",
	}
	lines := strings.Split(strings.TrimSpace(r.out), "\n")
	if len(lines) != len(want)+1 {
		t.Fatalf("token lines = %d, want %d:\n%s", len(lines), len(want)+1, r.out)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.HasSuffix(lines[len(lines)-1], "EOF") {
		t.Errorf("last line = %q, want EOF", lines[len(lines)-1])
	}
}

func TestLex_RootFlagAndTable(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "lex.fr", "extern sin(a)")

	r := execute(t, cfg, "", "--lex", src)
	if r.err != nil {
		t.Fatalf("--lex error = %v", r.err)
	}
	if !strings.Contains(r.out, "0:0 EXTERN") {
		t.Errorf("--lex output:\n%s", r.out)
	}

	r = execute(t, cfg, "", "lex", "--table", src)
	if r.err != nil {
		t.Fatalf("lex --table error = %v", r.err)
	}
	for _, want := range []string{"KIND", "TEXT", "extern", "sin"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("table missing %q:\n%s", want, r.out)
		}
	}
}

func TestLex_NotASource(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	src := writeFile(t, dir, "notes.txt", "1")

	r := execute(t, cfg, "", "lex", src)
	if r.err == nil {
		t.Fatal("lex error = nil, want failure")
	}
	if !strings.Contains(r.err.Error(), "1 of 1 file(s) failed to lex") {
		t.Errorf("error = %q", r.err.Error())
	}
}

func TestREPL_Plain(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	r := execute(t, cfg, "def f(x) x*2\n1 +;\nf(3)\n", "repl", "--plain")
	if r.err != nil {
		t.Fatalf("repl error = %v", r.err)
	}
	if !strings.Contains(r.out, "Welcome to the Fragment REPL!") {
		t.Errorf("missing banner:\n%s", r.out)
	}
	if n := strings.Count(r.out, "FunctionDefinition"); n != 2 {
		t.Errorf("printed definitions = %d, want 2:\n%s", n, r.out)
	}
	if !strings.Contains(r.errOut, "<stdin>:1: ") {
		t.Errorf("diagnostic missing line 1:\n%s", r.errOut)
	}
}

func TestRoot_NoArgsStartsSession(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	// A non-terminal stdin selects the line session
	r := execute(t, cfg, "extern cos(x)\n")
	if r.err != nil {
		t.Fatalf("root error = %v", r.err)
	}
	if !strings.Contains(r.out, "FunctionPrototype") {
		t.Errorf("output:\n%s", r.out)
	}
}

func TestHistory_RecordAndQuery(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, true)
	src := writeFile(t, dir, "prog.fr", "extern sin(x)\ndef sq(a) a*a\nsq(2)\n(")

	if r := execute(t, cfg, "", "parse", src); r.err == nil {
		t.Fatal("parse error = nil, want failure")
	}
	if r := execute(t, cfg, "sq(4)\n", "repl", "--plain", "--quiet"); r.err != nil {
		t.Fatalf("repl error = %v", r.err)
	}

	r := execute(t, cfg, "", "history")
	if r.err != nil {
		t.Fatalf("history error = %v", r.err)
	}
	for _, want := range []string{"sq(a)", "sin(x)", "error", "<stdin>"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("history missing %q:\n%s", want, r.out)
		}
	}

	r = execute(t, cfg, "", "history", "--errors")
	if r.err != nil {
		t.Fatalf("history --errors error = %v", r.err)
	}
	if strings.Contains(r.out, "sq(a)") || !strings.Contains(r.out, "error") {
		t.Errorf("history --errors:\n%s", r.out)
	}

	r = execute(t, cfg, "", "history", "--stats")
	if r.err != nil {
		t.Fatalf("history --stats error = %v", r.err)
	}
	for _, want := range []string{"entries", "5", "sessions", "2"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("stats missing %q:\n%s", want, r.out)
		}
	}

	r = execute(t, cfg, "", "history", "--prune", "1h")
	if r.err != nil || !strings.Contains(r.out, "pruned 0 entries") {
		t.Errorf("history --prune = %q, %v", r.out, r.err)
	}
}

func TestHistory_Empty(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	r := execute(t, cfg, "", "history")
	if r.err != nil {
		t.Fatalf("history error = %v", r.err)
	}
	if !strings.Contains(r.out, "no entries") {
		t.Errorf("output:\n%s", r.out)
	}
}

func TestWatch_Once(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)
	srcDir := filepath.Join(dir, "src")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, srcDir, "a.fr", "def f(x) x")
	writeFile(t, srcDir, "b.fr", "extern g()")

	r := execute(t, cfg, "", "watch", "--once", srcDir)
	if r.err != nil {
		t.Fatalf("watch --once error = %v", r.err)
	}
	if !strings.Contains(r.out, "a.fr: ok (1 definitions") || !strings.Contains(r.out, "b.fr: ok (0 definitions, 1 externs") {
		t.Errorf("output:\n%s", r.out)
	}

	writeFile(t, srcDir, "c.fr", "def")
	r = execute(t, cfg, "", "watch", "--once", "--debounce", "10ms", srcDir)
	if r.err == nil || !strings.Contains(r.err.Error(), "1 of 3 file(s) failed") {
		t.Errorf("error = %v, want one failure", r.err)
	}
}

func TestWatch_BadPath(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	r := execute(t, cfg, "", "watch", "--once", filepath.Join(dir, "missing.fr"))
	if r.err == nil {
		t.Error("watch error = nil, want failure")
	}
}

func TestVersion(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, false)

	r := execute(t, cfg, "", "version")
	if r.err != nil {
		t.Fatalf("version error = %v", r.err)
	}
	if !strings.HasPrefix(r.out, "fragment v") || !strings.Contains(r.out, "Go Version:") {
		t.Errorf("output:\n%s", r.out)
	}
}

func TestConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "bad.toml", "[parser]\ndivision = \"fractional\"\n")

	r := execute(t, cfg, "", "version")
	if r.err != nil {
		t.Fatalf("version should not load config: %v", r.err)
	}
	r = execute(t, cfg, "", "parse", writeFile(t, dir, "x.fr", "1"))
	if r.err == nil {
		t.Error("parse with invalid config succeeded")
	}
}

func TestDivisionUnsupported(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "div.toml", "[general]\nlog_level = \"error\"\n[parser]\ndivision = \"unsupported\"\n")
	src := writeFile(t, dir, "div.fr", "6/3")

	r := execute(t, cfg, "", "parse", src)
	if r.err == nil {
		t.Error("division parsed with division unsupported")
	}
}

func TestDoctor(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, true)

	r := execute(t, cfg, "", "doctor")
	if r.err != nil {
		t.Fatalf("doctor error = %v\n%s", r.err, r.out)
	}
	for _, want := range []string{"parser", "self-test parsed", "history-db", "0 entries", "terminal"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, r.out)
		}
	}

	r = execute(t, cfg, "", "doctor", "--json")
	if r.err != nil {
		t.Fatalf("doctor --json error = %v", r.err)
	}
	var report struct {
		Status string `json:"status"`
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	if err := json.Unmarshal([]byte(r.out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, r.out)
	}
	// stdin is not a terminal under test
	if report.Status != "degraded" {
		t.Errorf("status = %q, want degraded", report.Status)
	}
	if len(report.Checks) != 5 {
		t.Errorf("checks = %+v, want 5", report.Checks)
	}
}
