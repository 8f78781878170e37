// Package graph holds the in-memory ontology model the populator works
// against: a set of subject-predicate-object statements with a subject
// index, class registry, and an RDF/XML subset reader and writer.
//
// The model is not safe for concurrent mutation. Reads against a loaded
// model are safe from multiple goroutines as long as no writer runs.
package graph

import (
	"github.com/kturhan/ontofill/internal/vocab"
)

// Statement is a single subject-predicate-object fact. Literal marks the
// object as literal text rather than a resource IRI.
type Statement struct {
	Subject   string
	Predicate string
	Object    string
	Literal   bool
}

// Individual is an entity listed from the model together with its owning
// class.
type Individual struct {
	IRI   string
	Class string
}

// Model is an ordered, de-duplicated statement store.
type Model struct {
	nsPrefix string
	subjects []string
	bySubj   map[string][]Statement
	seen     map[Statement]struct{}
	classes  map[string]struct{}
}

// NewModel returns an empty model with the given namespace prefix.
func NewModel(nsPrefix string) *Model {
	return &Model{
		nsPrefix: nsPrefix,
		bySubj:   make(map[string][]Statement),
		seen:     make(map[Statement]struct{}),
		classes:  make(map[string]struct{}),
	}
}

// NamespacePrefix returns the base identifier prepended to local names,
// usually ending in '#'.
func (m *Model) NamespacePrefix() string { return m.nsPrefix }

// Add inserts a statement. Duplicate statements are ignored; the model is
// a set, like an RDF graph.
func (m *Model) Add(st Statement) {
	if _, dup := m.seen[st]; dup {
		return
	}
	m.seen[st] = struct{}{}
	if _, known := m.bySubj[st.Subject]; !known {
		m.subjects = append(m.subjects, st.Subject)
	}
	m.bySubj[st.Subject] = append(m.bySubj[st.Subject], st)

	if st.Predicate == vocab.RDFType && !st.Literal && st.Object == vocab.OWLClass {
		m.classes[st.Subject] = struct{}{}
	}
}

// AddAll bulk-inserts a batch of statements.
func (m *Model) AddAll(sts []Statement) {
	for _, st := range sts {
		m.Add(st)
	}
}

// RemoveAllWithSubject detaches every statement whose subject is the given
// IRI.
func (m *Model) RemoveAllWithSubject(subject string) {
	sts, ok := m.bySubj[subject]
	if !ok {
		return
	}
	for _, st := range sts {
		delete(m.seen, st)
		if st.Predicate == vocab.RDFType && !st.Literal && st.Object == vocab.OWLClass {
			delete(m.classes, st.Subject)
		}
	}
	delete(m.bySubj, subject)
	for i, s := range m.subjects {
		if s == subject {
			m.subjects = append(m.subjects[:i], m.subjects[i+1:]...)
			break
		}
	}
}

// Class resolves a fully qualified class IRI. The boolean reports whether
// the class exists in the model.
func (m *Model) Class(iri string) (string, bool) {
	_, ok := m.classes[iri]
	if !ok {
		return "", false
	}
	return iri, ok
}

// Classes returns the IRIs of all classes in insertion order.
func (m *Model) Classes() []string {
	var out []string
	for _, s := range m.subjects {
		if _, ok := m.classes[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// CreateIndividual asserts the subject as an instance of the class.
func (m *Model) CreateIndividual(classIRI, iri string) {
	m.Add(Statement{Subject: iri, Predicate: vocab.RDFType, Object: classIRI})
}

// MarkNamedIndividual adds the explicit owl:NamedIndividual typing.
func (m *Model) MarkNamedIndividual(iri string) {
	m.Add(Statement{Subject: iri, Predicate: vocab.RDFType, Object: vocab.OWLNamedIndividual})
}

// ListIndividuals returns every subject typed as an instance of a class
// present in the model, in insertion order. The owl:NamedIndividual marker
// type alone does not make a subject an individual.
func (m *Model) ListIndividuals() []Individual {
	var out []Individual
	for _, subj := range m.subjects {
		if _, isClass := m.classes[subj]; isClass {
			continue
		}
		for _, st := range m.bySubj[subj] {
			if st.Predicate != vocab.RDFType || st.Literal {
				continue
			}
			if _, ok := m.classes[st.Object]; ok {
				out = append(out, Individual{IRI: subj, Class: st.Object})
				break
			}
		}
	}
	return out
}

// Statements flattens the model in subject insertion order.
func (m *Model) Statements() []Statement {
	out := make([]Statement, 0, len(m.seen))
	for _, subj := range m.subjects {
		out = append(out, m.bySubj[subj]...)
	}
	return out
}

// Has reports whether the exact statement is present.
func (m *Model) Has(st Statement) bool {
	_, ok := m.seen[st]
	return ok
}

// Len returns the number of statements in the model.
func (m *Model) Len() int { return len(m.seen) }

// subjectStatements returns the statements for one subject, in insertion
// order. Used by the writer.
func (m *Model) subjectStatements(subject string) []Statement {
	return m.bySubj[subject]
}
