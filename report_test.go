package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vulnNode(fields map[string]string) Node {
	return Node{ID: newID(), Type: NodeVuln, W: 200, H: 120, Data: fields}
}

func TestSeverityBucket(t *testing.T) {
	cases := []struct {
		data map[string]string
		want string
	}{
		{map[string]string{"cvss": "9.8"}, "Critical"},
		{map[string]string{"cvss": "9.0"}, "Critical"},
		{map[string]string{"cvss": "7.5"}, "High"},
		{map[string]string{"cvss": "5.0"}, "Medium"},
		{map[string]string{"cvss": "2.1"}, "Low"},
		{map[string]string{"cvss": "0"}, "Info"},
		{map[string]string{"severity": "High (confirmed)"}, "High"},
		{map[string]string{"severity": "critical"}, "Critical"},
		{map[string]string{"cvss": "garbage", "severity": "low"}, "Low"},
		{map[string]string{}, "Info"},
	}
	for _, c := range cases {
		n := vulnNode(c.data)
		assert.Equal(t, c.want, severityBucket(&n), "%v", c.data)
	}
}

func TestSortedByCVSS(t *testing.T) {
	vulns := []Node{
		vulnNode(map[string]string{"type": "noscore"}),
		vulnNode(map[string]string{"type": "mid", "cvss": "5.0"}),
		vulnNode(map[string]string{"type": "top", "cvss": "9.8"}),
		vulnNode(map[string]string{"type": "low", "cvss": "2.0"}),
	}
	got := sortedByCVSS(vulns)
	order := make([]string, len(got))
	for i := range got {
		order[i] = got[i].Data["type"]
	}
	assert.Equal(t, []string{"top", "mid", "low", "noscore"}, order)
	// input order untouched
	assert.Equal(t, "noscore", vulns[0].Data["type"])
}

func TestBuildReportSections(t *testing.T) {
	doc := NewDocument()
	v := doc.Spawn(NodeVuln, 0, 0)
	v.Data["type"] = "SQL Injection"
	v.Data["cvss"] = "9.8"
	v.Data["severity"] = "Critical"
	v.Data["exploit"] = "sqlmap -u http://target/item?id=1"

	h := doc.Spawn(NodeHost, 0, 0)
	h.Data["hostname"] = "dc01"
	h.Data["os"] = "Windows Server 2019"

	c := doc.Spawn(NodeCredential, 0, 0)
	c.Data["username"] = "administrator"
	c.Data["privilege"] = "Domain Admin"

	hash := doc.Spawn(NodeHash, 0, 0)
	hash.Data["algorithm"] = "NTLM"
	hash.Data["password"] = "Summer2024!"

	f := doc.Spawn(NodeFlag, 0, 0)
	f.Data["value"] = "HTB{proof}"

	report := BuildReport(doc, "Acme Assessment", "operator", "2026-08-26")

	assert.True(t, strings.HasPrefix(report, "---\ntitle: Acme Assessment\n"))
	for _, section := range []string{
		"# Summary of Findings",
		"## Finding Severity",
		"# Technical Findings Details",
		"## SQL Injection (CVSS: 9.8 / Severity: Critical)",
		"# Appendices",
		"## Exploited Hosts",
		"## Credentials Summary",
		"## Hashes Summary",
		"## Flags Captured",
	} {
		assert.Contains(t, report, section)
	}
	assert.Contains(t, report, "```text\nsqlmap -u http://target/item?id=1\n```")
	assert.Contains(t, report, "| 1 | dc01 | Windows Server 2019 |")
	// a recovered cleartext marks the hash as cracked
	assert.Contains(t, report, "| 1 |  | NTLM | Yes |")
}

func TestBuildReportEmptyDocument(t *testing.T) {
	report := BuildReport(NewDocument(), "T", "", "2026-08-26")
	assert.Contains(t, report, "_No findings identified._")
	assert.NotContains(t, report, "# Technical Findings Details")
	assert.Contains(t, report, "| Hosts | 0 |")
}

func TestBuildReportFindingOrderAndNumbering(t *testing.T) {
	doc := NewDocument()
	low := doc.Spawn(NodeVuln, 0, 0)
	low.Data["type"] = "Open Redirect"
	low.Data["cvss"] = "3.1"
	high := doc.Spawn(NodeVuln, 0, 0)
	high.Data["type"] = "RCE"
	high.Data["cvss"] = "9.9"

	report := BuildReport(doc, "T", "", "2026-08-26")
	require.Contains(t, report, "| 1 | 9.9 |")
	assert.Less(t,
		strings.Index(report, "## RCE"),
		strings.Index(report, "## Open Redirect"),
		"findings render highest CVSS first")
}

func TestMarkdownHelpers(t *testing.T) {
	assert.Equal(t, "a\\|b", mdEscape("a|b"))
	assert.Equal(t, "one<br>two", mdEscape("one\r\ntwo"))

	long := strings.Repeat("x", 100)
	got := compactCell(long + "\nsecond line")
	assert.Equal(t, 70, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, "", compactCell("   "))
}
