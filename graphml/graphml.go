// Package graphml implements the GraphML reader/writer that is this
// module's external I/O format: a fixed key schema (node
// x/y/Obs/Label/Potential, edge Type/Value/LabeledValues/
// LowerCaseLabeledValues/UpperCaseLabeledValues/LabeledValue), using the
// standard library encoding/xml (see DESIGN.md for why no third-party XML
// library is used here).
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/tnucheck/alabel"
	"github.com/katalvlaran/tnucheck/engine"
	"github.com/katalvlaran/tnucheck/label"
	"github.com/katalvlaran/tnucheck/labeledvalue"
	"github.com/katalvlaran/tnucheck/proposition"
	"github.com/katalvlaran/tnucheck/tngraph"
)

// infinityPos and infinityNeg are the UTF-8 glyphs spec.md §6 requires to
// round-trip verbatim wherever a weight equals engine's +∞/-∞ sentinel.
const (
	infinityPos = "∞"
	infinityNeg = "-∞"
)

// parseWeight64 decodes an int64-valued weight field, recognizing the
// infinity glyphs before falling back to strconv.ParseInt.
func parseWeight64(s string) (int64, error) {
	switch s {
	case infinityPos:
		return int64(engine.PosInf), nil
	case infinityNeg:
		return int64(engine.NegInf), nil
	default:
		return strconv.ParseInt(s, 10, 64)
	}
}

// formatWeight64 renders an int64-valued weight field, substituting the
// infinity glyphs for engine's +∞/-∞ sentinel values.
func formatWeight64(w int64) string {
	switch w {
	case int64(engine.PosInf):
		return infinityPos
	case int64(engine.NegInf):
		return infinityNeg
	default:
		return strconv.FormatInt(w, 10)
	}
}

// parseWeight decodes an int-valued labeled-value weight, recognizing the
// infinity glyphs before falling back to strconv.Atoi.
func parseWeight(s string) (int, error) {
	switch s {
	case infinityPos:
		return int(engine.PosInf), nil
	case infinityNeg:
		return int(engine.NegInf), nil
	default:
		return strconv.Atoi(s)
	}
}

// formatWeight renders an int-valued labeled-value weight, substituting the
// infinity glyphs for engine's +∞/-∞ sentinel values.
func formatWeight(v int) string {
	switch v {
	case int(engine.PosInf):
		return infinityPos
	case int(engine.NegInf):
		return infinityNeg
	default:
		return strconv.Itoa(v)
	}
}

// Node/edge attribute key names, fixed by this package's GraphML schema.
const (
	keyX          = "x"
	keyY          = "y"
	keyObs        = "Obs"
	keyLabel      = "Label"
	keyPotential  = "Potential"
	keyType       = "Type"
	keyValue      = "Value"
	keyLabeledVal = "LabeledValues"
	keyLowerCase  = "LowerCaseLabeledValues"
	keyUpperCase  = "UpperCaseLabeledValues"
	keySingleCase = "LabeledValue"
)

// xmlDoc mirrors the minimal GraphML document shape this module reads and
// writes: a flat key schema (one <key> per attribute name) followed by a
// single <graph> of <node>/<edge> elements carrying <data> children keyed
// by the <key>'s id.
type xmlDoc struct {
	XMLName xml.Name  `xml:"graphml"`
	Keys    []xmlKey  `xml:"key"`
	Graph   xmlGraph  `xml:"graph"`
}

type xmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
}

type xmlGraph struct {
	EdgeDefault string    `xml:"edgedefault,attr"`
	Nodes       []xmlNode `xml:"node"`
	Edges       []xmlEdge `xml:"edge"`
}

type xmlNode struct {
	ID   string    `xml:"id,attr"`
	Data []xmlData `xml:"data"`
}

type xmlEdge struct {
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []xmlData `xml:"data"`
}

type xmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Read parses a GraphML document from r into a new tngraph.Graph.
func Read(r io.Reader) (*tngraph.Graph, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("graphml: decode: %w", err)
	}

	keyName := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		keyName[k.ID] = k.AttrName
	}

	g := tngraph.NewGraph()

	for _, xn := range doc.Graph.Nodes {
		n := &tngraph.Node{Name: xn.ID}
		fields := dataByName(xn.Data, keyName)
		if v, ok := fields[keyX]; ok {
			n.X, _ = strconv.ParseFloat(v, 64)
		}
		if v, ok := fields[keyY]; ok {
			n.Y, _ = strconv.ParseFloat(v, 64)
		}
		if v, ok := fields[keyObs]; ok && v != "" {
			r := []rune(v)[0]
			p, err := g.Alphabet().Put(r)
			if err != nil {
				return nil, fmt.Errorf("graphml: node %s: %w", xn.ID, err)
			}
			n.ObservedProposition = &p
		}
		if v, ok := fields[keyLabel]; ok {
			l, err := label.Parse(v, g.Alphabet())
			if err != nil {
				return nil, fmt.Errorf("graphml: node %s label: %w", xn.ID, err)
			}
			n.Label = l
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("graphml: node %s: %w", xn.ID, err)
		}
	}

	for _, xe := range doc.Graph.Edges {
		fields := dataByName(xe.Data, keyName)
		etype := parseEdgeType(fields[keyType])

		if v, ok := fields[keyValue]; ok && v != "" {
			w, err := parseWeight64(v)
			if err != nil {
				return nil, fmt.Errorf("graphml: edge %s->%s Value: %w", xe.Source, xe.Target, err)
			}
			if _, err := g.AddSTNEdge(xe.Source, xe.Target, w, etype); err != nil {
				return nil, fmt.Errorf("graphml: edge %s->%s: %w", xe.Source, xe.Target, err)
			}
		}

		if v, ok := fields[keySingleCase]; ok && v != "" {
			e, _ := g.FindEdge(xe.Source, xe.Target)
			if e == nil {
				var err error
				e, err = g.AddSTNEdge(xe.Source, xe.Target, 0, etype)
				if err != nil {
					return nil, err
				}
			}
			name, val, lower, err := parseSingleCase(v)
			if err != nil {
				return nil, fmt.Errorf("graphml: edge %s->%s LabeledValue: %w", xe.Source, xe.Target, err)
			}
			if lower {
				if err := g.SetLowerCase(e, name, val); err != nil {
					return nil, err
				}
			} else if err := g.SetUpperCase(e, name, val); err != nil {
				return nil, err
			}
		}

		if v, ok := fields[keyLabeledVal]; ok && v != "" {
			e, err := g.AddCSTNEdge(xe.Source, xe.Target, etype)
			if err != nil {
				return nil, err
			}
			if err := parseLabeledValues(v, g.Alphabet(), e.CSTNValues); err != nil {
				return nil, fmt.Errorf("graphml: edge %s->%s LabeledValues: %w", xe.Source, xe.Target, err)
			}
		}

		if v, ok := fields[keyLowerCase]; ok && v != "" {
			name, l, val, err := parseTripleEntry(v, g.Alphabet())
			if err != nil {
				return nil, fmt.Errorf("graphml: edge %s->%s LowerCaseLabeledValues: %w", xe.Source, xe.Target, err)
			}
			e, err := g.AddCSTNUEdge(xe.Source, xe.Target, etype)
			if err != nil {
				return nil, err
			}
			if err := g.SetCSTNULowerCase(e, tngraph.LowerCaseValue{NodeName: name, Label: l, Value: val}); err != nil {
				return nil, err
			}
		}

		if v, ok := fields[keyUpperCase]; ok && v != "" {
			e, err := g.AddCSTNUEdge(xe.Source, xe.Target, etype)
			if err != nil {
				return nil, err
			}
			for _, tok := range splitEntries(v) {
				name, l, val, err := parseTriple(tok, g.Alphabet())
				if err != nil {
					return nil, fmt.Errorf("graphml: edge %s->%s UpperCaseLabeledValues: %w", xe.Source, xe.Target, err)
				}
				if _, err := g.ALabelAlphabet().Index(name); err != nil {
					if _, err := g.ALabelAlphabet().Put(name); err != nil {
						return nil, err
					}
				}
				a, err := alabel.FromNames(g.ALabelAlphabet(), name)
				if err != nil {
					return nil, err
				}
				e.CSTNUUpperCase.Put(a, l, val)
			}
		}
	}

	return g, nil
}

func dataByName(data []xmlData, keyName map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for _, d := range data {
		if name, ok := keyName[d.Key]; ok {
			out[name] = strings.TrimSpace(d.Value)
		}
	}
	return out
}

func parseEdgeType(s string) tngraph.EdgeType {
	switch s {
	case "contingent":
		return tngraph.Contingent
	case "derived":
		return tngraph.Derived
	case "internal":
		return tngraph.Internal
	default:
		return tngraph.Requirement
	}
}

// parseSingleCase decodes "LC(Name):int" or "UC(Name):int".
func parseSingleCase(s string) (name string, value int64, lower bool, err error) {
	lower = strings.HasPrefix(s, "LC(")
	upper := strings.HasPrefix(s, "UC(")
	if !lower && !upper {
		return "", 0, false, fmt.Errorf("expected LC(...)/UC(...), got %q", s)
	}
	rest := s[3:]
	idx := strings.Index(rest, "):")
	if idx < 0 {
		return "", 0, false, fmt.Errorf("malformed case value %q", s)
	}
	name = rest[:idx]
	value, err = parseWeight64(rest[idx+2:])
	if err != nil {
		return "", 0, false, err
	}
	return name, value, lower, nil
}

// parseLabeledValues decodes "{(v1, L1) (v2, L2) ...}" into m.
func parseLabeledValues(s string, alphabet *proposition.Alphabet, m *labeledvalue.LabeledIntMap) error {
	for _, tok := range splitEntries(s) {
		parts := strings.SplitN(tok, ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("malformed entry %q", tok)
		}
		v, err := parseWeight(strings.TrimSpace(parts[0]))
		if err != nil {
			return err
		}
		l, err := label.Parse(strings.TrimSpace(parts[1]), alphabet)
		if err != nil {
			return err
		}
		m.Put(l, v)
	}
	return nil
}

// parseTriple decodes "(name, Label, value)".
func parseTriple(tok string, alphabet *proposition.Alphabet) (string, label.Label, int, error) {
	tok = strings.Trim(tok, "()")
	parts := strings.SplitN(tok, ",", 3)
	if len(parts) != 3 {
		return "", label.Label{}, 0, fmt.Errorf("malformed triple %q", tok)
	}
	name := strings.TrimSpace(parts[0])
	l, err := label.Parse(strings.TrimSpace(parts[1]), alphabet)
	if err != nil {
		return "", label.Label{}, 0, err
	}
	v, err := parseWeight(strings.TrimSpace(parts[2]))
	if err != nil {
		return "", label.Label{}, 0, err
	}
	return name, l, v, nil
}

// parseTripleEntry decodes a single "{(name, Label, value)}" entry set,
// requiring exactly one entry (the singular lower-case value).
func parseTripleEntry(s string, alphabet *proposition.Alphabet) (string, label.Label, int, error) {
	entries := splitEntries(s)
	if len(entries) != 1 {
		return "", label.Label{}, 0, fmt.Errorf("expected exactly one entry, got %d", len(entries))
	}
	return parseTriple(entries[0], alphabet)
}

// splitEntries splits a "{(...)(...)...}" set into its parenthesized
// entries, stripping the outer braces.
func splitEntries(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		}
	}
	return out
}

// Write serializes g to w as GraphML, using this package's fixed key
// schema. Nodes and edges are emitted in a stable, sorted order so output
// is reproducible across runs on an unchanged graph.
func Write(w io.Writer, g *tngraph.Graph) error {
	doc := xmlDoc{
		Keys: []xmlKey{
			{ID: "nx", For: "node", AttrName: keyX},
			{ID: "ny", For: "node", AttrName: keyY},
			{ID: "nobs", For: "node", AttrName: keyObs},
			{ID: "nlabel", For: "node", AttrName: keyLabel},
			{ID: "npot", For: "node", AttrName: keyPotential},
			{ID: "etype", For: "edge", AttrName: keyType},
			{ID: "eval", For: "edge", AttrName: keyValue},
			{ID: "elv", For: "edge", AttrName: keyLabeledVal},
			{ID: "elc", For: "edge", AttrName: keyLowerCase},
			{ID: "euc", For: "edge", AttrName: keyUpperCase},
			{ID: "esc", For: "edge", AttrName: keySingleCase},
		},
		Graph: xmlGraph{EdgeDefault: "directed"},
	}

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	for _, n := range nodes {
		xn := xmlNode{ID: n.Name}
		xn.Data = append(xn.Data,
			xmlData{Key: "nx", Value: strconv.FormatFloat(n.X, 'f', -1, 64)},
			xmlData{Key: "ny", Value: strconv.FormatFloat(n.Y, 'f', -1, 64)},
			xmlData{Key: "nlabel", Value: n.Label.String(g.Alphabet())},
		)
		if n.IsObserver() {
			xn.Data = append(xn.Data, xmlData{Key: "nobs", Value: string(n.ObservedProposition.Letter())})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, xn)
	}

	for _, e := range g.OrderedEdges() {
		xe := xmlEdge{Source: e.Source, Target: e.Target}
		xe.Data = append(xe.Data, xmlData{Key: "etype", Value: e.Type.String()})
		if e.HasSTN {
			xe.Data = append(xe.Data, xmlData{Key: "eval", Value: formatWeight64(e.STNWeight)})
		}
		if e.LowerCase != nil {
			xe.Data = append(xe.Data, xmlData{Key: "esc", Value: fmt.Sprintf("LC(%s):%s", e.LowerCase.NodeName, formatWeight64(e.LowerCase.Value))})
		}
		if e.UpperCase != nil {
			xe.Data = append(xe.Data, xmlData{Key: "esc", Value: fmt.Sprintf("UC(%s):%s", e.UpperCase.NodeName, formatWeight64(e.UpperCase.Value))})
		}
		if e.CSTNValues != nil && !e.CSTNValues.IsEmpty() {
			xe.Data = append(xe.Data, xmlData{Key: "elv", Value: formatLabeledValues(e.CSTNValues, g.Alphabet())})
		}
		if e.CSTNUValues != nil && !e.CSTNUValues.IsEmpty() {
			xe.Data = append(xe.Data, xmlData{Key: "elv", Value: formatLabeledValues(e.CSTNUValues, g.Alphabet())})
		}
		if e.CSTNULowerCase != nil {
			v := e.CSTNULowerCase
			xe.Data = append(xe.Data, xmlData{Key: "elc", Value: fmt.Sprintf("{(%s, %s, %s)}", v.NodeName, v.Label.String(g.Alphabet()), formatWeight(v.Value))})
		}
		if e.CSTNUUpperCase != nil && !e.CSTNUUpperCase.IsEmpty() {
			xe.Data = append(xe.Data, xmlData{Key: "euc", Value: formatUpperCase(e.CSTNUUpperCase, g.Alphabet(), g.ALabelAlphabet())})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, xe)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("graphml: encode: %w", err)
	}
	return nil
}

func formatLabeledValues(m *labeledvalue.LabeledIntMap, alphabet *proposition.Alphabet) string {
	entries := m.EntrySet()
	sort.Slice(entries, func(i, j int) bool { return label.Compare(entries[i].Label, entries[j].Label) < 0 })
	var b strings.Builder
	b.WriteString("{")
	for _, e := range entries {
		fmt.Fprintf(&b, "(%s, %s)", formatWeight(e.Value), e.Label.String(alphabet))
	}
	b.WriteString("}")
	return b.String()
}

func formatUpperCase(m *labeledvalue.ALabelIntMap, alphabet *proposition.Alphabet, aAlphabet *alabel.Alphabet) string {
	type row struct {
		name string
		l    label.Label
		v    int
	}
	var rows []row
	for _, a := range m.ALabels() {
		inner := m.InnerMap(a)
		if inner == nil {
			continue
		}
		names, err := a.Names()
		if err != nil || len(names) == 0 {
			continue
		}
		for _, e := range inner.EntrySet() {
			rows = append(rows, row{name: names[0], l: e.Label, v: e.Value})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].name != rows[j].name {
			return rows[i].name < rows[j].name
		}
		return label.Compare(rows[i].l, rows[j].l) < 0
	})
	var b strings.Builder
	b.WriteString("{")
	for _, r := range rows {
		fmt.Fprintf(&b, "(%s, %s, %s)", r.name, r.l.String(alphabet), formatWeight(r.v))
	}
	b.WriteString("}")
	return b.String()
}
