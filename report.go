package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BuildReport renders the document as a single Markdown engagement
// report: severity summary, technical finding details ordered by CVSS,
// and appendices for every other object type on the map.
func BuildReport(doc *Document, title, author, date string) string {
	byType := make(map[NodeType][]Node)
	for _, n := range doc.Nodes {
		byType[n.Type] = append(byType[n.Type], n)
	}

	vulns := sortedByCVSS(byType[NodeVuln])

	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: %s\nauthor: %s\ndate: %s\n---\n\n", title, author, date)

	writeSummary(&b, vulns)
	writeFindings(&b, vulns)
	writeAppendices(&b, byType)
	writeArtifacts(&b, byType[NodeArtifact])

	return b.String()
}

// sortedByCVSS orders findings highest score first; findings without a
// parsable score sink to the bottom.
func sortedByCVSS(vulns []Node) []Node {
	out := make([]Node, len(vulns))
	copy(out, vulns)
	sort.SliceStable(out, func(i, j int) bool {
		return cvssOf(&out[i]) > cvssOf(&out[j])
	})
	return out
}

func cvssOf(n *Node) float64 {
	v, ok := n.Field("cvss")
	if !ok {
		return -1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return -1
	}
	return f
}

// severityBucket maps a finding into the standard five buckets, scoring
// by CVSS when present and falling back to the recorded severity string.
func severityBucket(n *Node) string {
	if cvss := cvssOf(n); cvss >= 0 {
		switch {
		case cvss >= 9:
			return "Critical"
		case cvss >= 7:
			return "High"
		case cvss >= 4:
			return "Medium"
		case cvss > 0:
			return "Low"
		default:
			return "Info"
		}
	}
	sev, _ := n.Field("severity")
	sev = strings.ToLower(sev)
	for _, bucket := range []string{"Critical", "High", "Medium", "Low"} {
		if strings.Contains(sev, strings.ToLower(bucket)) {
			return bucket
		}
	}
	return "Info"
}

var severityOrder = []string{"Critical", "High", "Medium", "Low", "Info"}

func writeSummary(b *strings.Builder, vulns []Node) {
	b.WriteString("# Summary of Findings\n\n")
	if len(vulns) == 0 {
		b.WriteString("_No findings identified._\n\n")
		return
	}

	buckets := map[string]int{}
	for i := range vulns {
		buckets[severityBucket(&vulns[i])]++
	}
	counts := make([]string, len(severityOrder))
	for i, k := range severityOrder {
		counts[i] = strconv.Itoa(buckets[k])
	}
	b.WriteString("## Finding Severity\n\n")
	mdTable(b, severityOrder, [][]string{counts})

	rows := make([][]string, 0, len(vulns))
	for i := range vulns {
		v := &vulns[i]
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fieldOr(v, "cvss", ""),
			fieldOr(v, "severity", "Unknown"),
			fieldOr(v, "type", "Finding"),
		})
	}
	b.WriteString("## Finding List (CVSS Ordered)\n\n")
	mdTable(b, []string{"#", "CVSS", "Severity", "Finding Name"}, rows)
}

func writeFindings(b *strings.Builder, vulns []Node) {
	if len(vulns) == 0 {
		return
	}
	b.WriteString("# Technical Findings Details\n\n")
	for i := range vulns {
		v := &vulns[i]
		fmt.Fprintf(b, "## %s (CVSS: %s / Severity: %s)\n\n",
			fieldOr(v, "type", "Finding"),
			fieldOr(v, "cvss", "-"),
			fieldOr(v, "severity", "Unknown"))
		mdKV(b, "CVE", v, "cve")
		mdKV(b, "CWE", v, "cwe")
		mdBlock(b, "Affected", v, "affected")
		mdBlock(b, "Description", v, "description")
		mdKV(b, "Evidence", v, "evidence")
		mdBlock(b, "Impact", v, "impact")
		mdCode(b, "Exploit / Reproduction", v, "exploit")
		mdBlock(b, "Remediation", v, "remediation")
	}
}

func writeAppendices(b *strings.Builder, byType map[NodeType][]Node) {
	b.WriteString("# Appendices\n\n")

	b.WriteString("## Summary of Identified Objects\n\n")
	objRows := [][]string{}
	for _, entry := range []struct {
		name string
		t    NodeType
	}{
		{"Hosts", NodeHost},
		{"Credentials", NodeCredential},
		{"Hashes", NodeHash},
		{"Flags", NodeFlag},
		{"Web", NodeWebApp},
		{"SQL", NodeDatabase},
		{"Zones", NodeZone},
	} {
		objRows = append(objRows, []string{entry.name, strconv.Itoa(len(byType[entry.t]))})
	}
	mdTable(b, []string{"Object Type", "Count"}, objRows)

	if hosts := byType[NodeHost]; len(hosts) > 0 {
		b.WriteString("## Exploited Hosts\n\n")
		rows := [][]string{}
		for i := range hosts {
			h := &hosts[i]
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				fieldOr(h, "hostname", ""),
				fieldOr(h, "os", ""),
				compactCell(fieldOr(h, "network", "")),
			})
		}
		mdTable(b, []string{"#", "Hostname", "OS", "Network"}, rows)
	}

	webs, sqls := byType[NodeWebApp], byType[NodeDatabase]
	if len(webs)+len(sqls) > 0 {
		b.WriteString("## Exploited Infrastructure\n\n")
		rows := [][]string{}
		for i := range webs {
			w := &webs[i]
			name := fieldOr(w, "hostname", "")
			if name == "" {
				name = fieldOr(w, "url", "")
			}
			rows = append(rows, []string{strconv.Itoa(len(rows) + 1), "WEB", name, fieldOr(w, "ip", "")})
		}
		for i := range sqls {
			s := &sqls[i]
			rows = append(rows, []string{strconv.Itoa(len(rows) + 1), "SQL", fieldOr(s, "hostname", ""), fieldOr(s, "ip", "")})
		}
		mdTable(b, []string{"#", "Type", "Name", "IP"}, rows)
	}

	if creds := byType[NodeCredential]; len(creds) > 0 {
		b.WriteString("## Credentials Summary\n\n")
		rows := [][]string{}
		for i := range creds {
			c := &creds[i]
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				fieldOr(c, "privilege", ""),
				fieldOr(c, "username", ""),
				fieldOr(c, "password", ""),
			})
		}
		mdTable(b, []string{"#", "Privilege", "Username", "Password"}, rows)
	}

	if hashes := byType[NodeHash]; len(hashes) > 0 {
		b.WriteString("## Hashes Summary\n\n")
		rows := [][]string{}
		for i := range hashes {
			h := &hashes[i]
			cracked := "No"
			if v, ok := h.Field("password"); ok && v != "" {
				cracked = "Yes"
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				fieldOr(h, "type", ""),
				fieldOr(h, "algorithm", ""),
				cracked,
				fieldOr(h, "target", ""),
				compactCell(fieldOr(h, "source", "")),
			})
		}
		mdTable(b, []string{"#", "Type", "Algorithm", "Cracked", "Target", "Source"}, rows)
	}

	if flags := byType[NodeFlag]; len(flags) > 0 {
		b.WriteString("## Flags Captured\n\n")
		rows := [][]string{}
		for i := range flags {
			f := &flags[i]
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				fieldOr(f, "value", ""),
				compactCell(fieldOr(f, "source", "")),
			})
		}
		mdTable(b, []string{"#", "Flag", "Source"}, rows)
	}
}

func writeArtifacts(b *strings.Builder, artifacts []Node) {
	if len(artifacts) == 0 {
		return
	}
	b.WriteString("# Artifacts / Cleanup\n\n")
	for i := range artifacts {
		a := &artifacts[i]
		parts := []string{}
		if v := fieldOr(a, "type", ""); v != "" {
			parts = append(parts, v)
		}
		if v := fieldOr(a, "location", ""); v != "" {
			parts = append(parts, v)
		}
		title := strings.Join(parts, " - ")
		if title == "" {
			title = "Unnamed Artifact"
		}
		fmt.Fprintf(b, "## Artifact: %s\n\n", title)
		mdBlock(b, "Type", a, "type")
		mdBlock(b, "Location", a, "location")
		mdBlock(b, "Purpose", a, "purpose")
		mdBlock(b, "Cleanup", a, "cleanup")
		mdKV(b, "Evidence", a, "evidence")
		mdKV(b, "Created By", a, "created_by")
		mdBlock(b, "Notes", a, "notes")
	}
}

// --- markdown helpers ---------------------------------------------------

func fieldOr(n *Node, key, fallback string) string {
	if v, ok := n.Field(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func mdTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = mdEscape(c)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func mdKV(b *strings.Builder, label string, n *Node, key string) {
	if v := fieldOr(n, key, ""); v != "" {
		fmt.Fprintf(b, "**%s:** %s\n\n", label, v)
	}
}

func mdBlock(b *strings.Builder, label string, n *Node, key string) {
	if v := fieldOr(n, key, ""); v != "" {
		fmt.Fprintf(b, "**%s:**\n\n%s\n\n", label, v)
	}
}

func mdCode(b *strings.Builder, label string, n *Node, key string) {
	if v := fieldOr(n, key, ""); v != "" {
		fmt.Fprintf(b, "**%s:**\n\n```text\n%s\n```\n\n", label, v)
	}
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}

// compactCell keeps table cells to one trimmed line.
func compactCell(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	first := strings.SplitN(s, "\n", 2)[0]
	const maxLen = 70
	if len(first) > maxLen {
		first = first[:maxLen-1] + "…"
	}
	return first
}
