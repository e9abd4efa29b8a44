// Package junit renders collected test results as JUnit-style XML
// documents consumable by common CI ingestion tools.
package junit

import "encoding/xml"

// TestSuites is the combined document wrapping every suite, used by the
// single-file destination mode.
type TestSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []TestSuite `xml:"testsuite"`
}

// TestSuite is one suite's report: rollup attributes plus the ordered
// test case entries. Attribute order follows the layout downstream
// consumers expect.
type TestSuite struct {
	XMLName    xml.Name    `xml:"testsuite"`
	Name       string      `xml:"name,attr"`
	Tests      int         `xml:"tests,attr"`
	Time       string      `xml:"time,attr"`
	Failures   int         `xml:"failures,attr"`
	Errors     int         `xml:"errors,attr"`
	Properties *Properties `xml:"properties,omitempty"`
	Cases      []TestCase  `xml:"testcase"`
	SystemOut  *Output     `xml:"system-out,omitempty"`
	SystemErr  *Output     `xml:"system-err,omitempty"`
}

// TestCase is a single test entry within a suite. Exactly one of
// Failure, Error and Skipped is set for non-success outcomes.
type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Classname string   `xml:"classname,attr"`
	Name      string   `xml:"name,attr"`
	Time      string   `xml:"time,attr"`
	Failure   *Detail  `xml:"failure,omitempty"`
	Error     *Detail  `xml:"error,omitempty"`
	Skipped   *Detail  `xml:"skipped,omitempty"`
	SystemOut *Output  `xml:"system-out,omitempty"`
	SystemErr *Output  `xml:"system-err,omitempty"`
}

// Detail is the diagnostic block nested under a non-success test case.
// Failures and errors carry the formatted trace as CDATA; skips carry
// the reason in the message attribute only.
type Detail struct {
	Type    string `xml:"type,attr"`
	Message string `xml:"message,attr"`
	Content string `xml:",cdata"`
}

// Output is a captured stream block, emitted as CDATA.
type Output struct {
	Content string `xml:",cdata"`
}

// Properties lists run-level key/value pairs attached to a suite.
type Properties struct {
	Properties []Property `xml:"property"`
}

// Property is one name/value pair.
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}
