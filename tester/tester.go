package tester

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elasticai/stubgen/compiler"
	"github.com/elasticai/stubgen/config"
	"github.com/google/go-cmp/cmp"
)

type OutputDiff struct {
	Output string
	Diff   string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*OutputDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, fmt.Sprintf("%v (-want +got):", diff.Output))
			for _, l := range strings.Split(strings.TrimRight(diff.Diff, "\n"), "\n") {
				diffLines = append(diffLines, indent1+l)
			}
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

// Tester compiles the source of each test case and compares the outputs with the expected ones.
// A nil Config means the default configuration.
type Tester struct {
	Config *config.Config
	Cases  []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Config, c))
	}
	return rs
}

func runTest(conf *config.Config, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	opts := []compiler.Option{
		compiler.WithSourceName(c.FilePath),
	}
	if conf != nil {
		opts = append(opts, compiler.WithConfig(conf))
	}
	res, err := compiler.Compile(bytes.NewReader(c.TestCase.Source), opts...)
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	var diffs []*OutputDiff
	if diff := cmp.Diff(normalizeOutput(c.TestCase.Header), normalizeOutput(res.Stub.Header())); diff != "" {
		diffs = append(diffs, &OutputDiff{
			Output: "header",
			Diff:   diff,
		})
	}
	if diff := cmp.Diff(normalizeOutput(c.TestCase.CSource), normalizeOutput(res.Stub.Source())); diff != "" {
		diffs = append(diffs, &OutputDiff{
			Output: "source",
			Diff:   diff,
		})
	}
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("output mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}
