package graph

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kturhan/ontofill/internal/vocab"
)

// The reader and writer below cover the RDF/XML subset produced by common
// ontology editors: an rdf:RDF envelope, typed nodes and rdf:Description
// nodes identified by rdf:about or rdf:ID, property children carrying
// either an rdf:resource reference or literal text. Container and
// collection syntax, reification and rdf:parseType are out.

// LoadFile reads an ontology document from disk.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology %s: %w", path, err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("malformed ontology %s: %w", path, err)
	}
	return m, nil
}

// Load parses an RDF/XML document into a model. The namespace prefix is
// taken from the default xmlns declaration on the envelope, falling back
// to xml:base plus a fragment separator.
func Load(r io.Reader) (*Model, error) {
	dec := xml.NewDecoder(r)

	var m *Model
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if m == nil {
			if start.Name.Space != vocab.RDFNS || start.Name.Local != "RDF" {
				return nil, fmt.Errorf("unexpected root element <%s>, want rdf:RDF", start.Name.Local)
			}
			m = NewModel(envelopePrefix(start))
			continue
		}
		if err := readNode(dec, start, m); err != nil {
			return nil, err
		}
	}
	if m == nil {
		return nil, fmt.Errorf("no rdf:RDF root element found")
	}
	return m, nil
}

// xmlNamespace is what the decoder reports as the Space of xml:-prefixed
// attributes after namespace expansion.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// envelopePrefix extracts the namespace prefix from the rdf:RDF envelope.
func envelopePrefix(root xml.StartElement) string {
	var base string
	for _, attr := range root.Attr {
		switch {
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			return attr.Value
		case (attr.Name.Space == xmlNamespace || attr.Name.Space == "xml") && attr.Name.Local == "base":
			base = attr.Value
		}
	}
	if base != "" && !strings.HasSuffix(base, "#") && !strings.HasSuffix(base, "/") {
		base += "#"
	}
	return base
}

// readNode consumes one top-level node element and records its statements.
func readNode(dec *xml.Decoder, start xml.StartElement, m *Model) error {
	subject := m.resolve(nodeRef(start))
	if subject == "" {
		// Anonymous nodes carry nothing the populator needs.
		return dec.Skip()
	}

	if start.Name.Space != vocab.RDFNS || start.Name.Local != "Description" {
		m.Add(Statement{Subject: subject, Predicate: vocab.RDFType, Object: start.Name.Space + start.Name.Local})
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			if err := readProperty(dec, el, subject, m); err != nil {
				return err
			}
		}
	}
}

// readProperty consumes one property element of a node.
func readProperty(dec *xml.Decoder, start xml.StartElement, subject string, m *Model) error {
	predicate := start.Name.Space + start.Name.Local

	for _, attr := range start.Attr {
		if attr.Name.Space == vocab.RDFNS && attr.Name.Local == "resource" {
			m.Add(Statement{Subject: subject, Predicate: predicate, Object: m.resolve(attr.Value)})
			return dec.Skip()
		}
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.CharData:
			text.Write(el)
		case xml.StartElement:
			// Nested node syntax is outside the subset; drop the subtree.
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			if value != "" {
				m.Add(Statement{Subject: subject, Predicate: predicate, Object: value, Literal: true})
			}
			return nil
		}
	}
}

// nodeRef pulls the subject reference off a node element.
func nodeRef(start xml.StartElement) string {
	for _, attr := range start.Attr {
		if attr.Name.Space != vocab.RDFNS {
			continue
		}
		switch attr.Name.Local {
		case "about", "ID":
			return attr.Value
		}
	}
	return ""
}

// resolve expands a possibly relative reference against the model's
// namespace prefix.
func (m *Model) resolve(ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "#"):
		return strings.TrimSuffix(m.nsPrefix, "#") + ref
	case strings.Contains(ref, "://"):
		return ref
	default:
		return m.nsPrefix + ref
	}
}

// WriteFile persists the model next to any existing file of the same name,
// replacing it only once the document is fully written.
func (m *Model) WriteFile(path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ontofill-*.owl")
	if err != nil {
		return fmt.Errorf("write ontology %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = m.Write(tmp); err != nil {
		return fmt.Errorf("write ontology %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write ontology %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write ontology %s: %w", path, err)
	}
	return nil
}

// Write serializes the model as RDF/XML.
func (m *Model) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	extra := m.extraNamespaces()
	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(bw, "<rdf:RDF xmlns=%q\n", m.nsPrefix)
	fmt.Fprintf(bw, "         xml:base=%q\n", strings.TrimSuffix(m.nsPrefix, "#"))
	fmt.Fprintf(bw, "         xmlns:rdf=%q\n", vocab.RDFNS)
	fmt.Fprintf(bw, "         xmlns:rdfs=%q\n", vocab.RDFSNS)
	fmt.Fprintf(bw, "         xmlns:owl=%q", vocab.OWLNS)
	for prefix, ns := range extra {
		fmt.Fprintf(bw, "\n         xmlns:%s=%q", prefix, ns)
	}
	fmt.Fprintf(bw, ">\n")

	qname := m.qnamer(extra)
	for _, subject := range m.subjects {
		if err := m.writeSubject(bw, subject, qname); err != nil {
			return err
		}
	}

	fmt.Fprintf(bw, "</rdf:RDF>\n")
	return bw.Flush()
}

// writeSubject emits one node element with its property children.
func (m *Model) writeSubject(bw *bufio.Writer, subject string, qname func(string) string) error {
	sts := m.subjectStatements(subject)

	element, consumed := m.nodeElement(sts)
	fmt.Fprintf(bw, "  <%s rdf:about=\"%s\">\n", element, escapeAttr(subject))
	for _, st := range sts {
		if st == consumed {
			continue
		}
		name := qname(st.Predicate)
		if st.Literal {
			fmt.Fprintf(bw, "    <%s>%s</%s>\n", name, escapeText(st.Object), name)
		} else {
			fmt.Fprintf(bw, "    <%s rdf:resource=\"%s\"/>\n", name, escapeAttr(st.Object))
		}
	}
	fmt.Fprintf(bw, "  </%s>\n", element)
	return nil
}

// nodeElement picks the element name of a node and the type statement that
// the name already expresses.
func (m *Model) nodeElement(sts []Statement) (string, Statement) {
	var fallback *Statement
	for i, st := range sts {
		if st.Predicate != vocab.RDFType || st.Literal {
			continue
		}
		switch st.Object {
		case vocab.OWLClass:
			return "owl:Class", st
		case vocab.OWLOntology:
			return "owl:Ontology", st
		case vocab.OWLNamedIndividual:
			return "owl:NamedIndividual", st
		default:
			if fallback == nil {
				fallback = &sts[i]
			}
		}
	}
	if fallback != nil {
		if local, ok := m.defaultNSLocal(fallback.Object); ok {
			return local, *fallback
		}
	}
	return "rdf:Description", Statement{}
}

// defaultNSLocal reports whether the IRI lives in the default namespace
// and returns its local name.
func (m *Model) defaultNSLocal(iri string) (string, bool) {
	if m.nsPrefix != "" && strings.HasPrefix(iri, m.nsPrefix) {
		return iri[len(m.nsPrefix):], true
	}
	return "", false
}

// extraNamespaces collects predicate namespaces beyond the well-known set,
// assigning ns1, ns2, ... prefixes deterministically.
func (m *Model) extraNamespaces() map[string]string {
	known := map[string]bool{vocab.RDFNS: true, vocab.RDFSNS: true, vocab.OWLNS: true, m.nsPrefix: true}
	var others []string
	seen := map[string]bool{}
	for _, sts := range m.bySubj {
		for _, st := range sts {
			ns := vocab.Namespace(st.Predicate)
			if ns == "" || known[ns] || seen[ns] {
				continue
			}
			seen[ns] = true
			others = append(others, ns)
		}
	}
	sort.Strings(others)
	out := make(map[string]string, len(others))
	for i, ns := range others {
		out[fmt.Sprintf("ns%d", i+1)] = ns
	}
	return out
}

// qnamer maps predicate IRIs to qualified names for serialization.
func (m *Model) qnamer(extra map[string]string) func(string) string {
	byNS := map[string]string{vocab.RDFNS: "rdf", vocab.RDFSNS: "rdfs", vocab.OWLNS: "owl"}
	for prefix, ns := range extra {
		byNS[ns] = prefix
	}
	return func(iri string) string {
		ns, local := vocab.Namespace(iri), vocab.Local(iri)
		if ns == m.nsPrefix && m.nsPrefix != "" {
			return local
		}
		if prefix, ok := byNS[ns]; ok {
			return prefix + ":" + local
		}
		return local
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
