package main

// FieldKind distinguishes one-line fields from free-text blocks. The core
// never validates values against the catalog; it is read at spawn time and
// by the renderers to enumerate and order fields.
type FieldKind int

const (
	FieldLine FieldKind = iota
	FieldBlock
)

type FieldSpec struct {
	Key  string
	Kind FieldKind
}

type Primitive struct {
	Type   NodeType
	Label  string
	Fields []FieldSpec
}

// catalog lists every primitive the map can hold, in spawn-key order.
var catalog = []Primitive{
	{NodeHost, "Host", []FieldSpec{
		{"hostname", FieldLine},
		{"ip", FieldLine},
		{"os", FieldLine},
		{"network", FieldLine},
		{"notes", FieldBlock},
	}},
	{NodeVuln, "Vulnerability", []FieldSpec{
		{"type", FieldLine},
		{"cvss", FieldLine},
		{"severity", FieldLine},
		{"cve", FieldLine},
		{"cwe", FieldLine},
		{"affected", FieldLine},
		{"description", FieldBlock},
		{"evidence", FieldLine},
		{"impact", FieldBlock},
		{"exploit", FieldBlock},
		{"remediation", FieldBlock},
	}},
	{NodeCredential, "Credential", []FieldSpec{
		{"username", FieldLine},
		{"password", FieldLine},
		{"privilege", FieldLine},
		{"source", FieldLine},
	}},
	{NodeHash, "Hash", []FieldSpec{
		{"type", FieldLine},
		{"algorithm", FieldLine},
		{"password", FieldLine},
		{"target", FieldLine},
		{"source", FieldBlock},
	}},
	{NodeArtifact, "Artifact", []FieldSpec{
		{"type", FieldLine},
		{"location", FieldLine},
		{"purpose", FieldBlock},
		{"cleanup", FieldBlock},
		{"evidence", FieldLine},
		{"created_by", FieldLine},
		{"notes", FieldBlock},
	}},
	{NodeFlag, "Flag", []FieldSpec{
		{"value", FieldLine},
		{"source", FieldLine},
	}},
	{NodeWebApp, "Web App", []FieldSpec{
		{"hostname", FieldLine},
		{"url", FieldLine},
		{"ip", FieldLine},
		{"notes", FieldBlock},
	}},
	{NodeDatabase, "Database", []FieldSpec{
		{"hostname", FieldLine},
		{"ip", FieldLine},
		{"type", FieldLine},
		{"notes", FieldBlock},
	}},
	{NodeZone, "Zone", []FieldSpec{
		{"title", FieldLine},
		{"color", FieldLine},
	}},
}

func primitiveFor(t NodeType) (Primitive, bool) {
	for _, p := range catalog {
		if p.Type == t {
			return p, true
		}
	}
	return Primitive{}, false
}

// titleField is the field shown as a node's headline in the renderers.
func titleField(t NodeType) string {
	switch t {
	case NodeHost, NodeWebApp, NodeDatabase:
		return "hostname"
	case NodeVuln, NodeHash, NodeArtifact:
		return "type"
	case NodeCredential:
		return "username"
	case NodeFlag:
		return "value"
	case NodeZone:
		return "title"
	}
	return ""
}
