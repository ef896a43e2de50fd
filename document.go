package binsweep

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
)

// ResultsContainerID is the id of the container found bins are appended to.
const ResultsContainerID = "results"

// ElementKind is the kind of a display element.
type ElementKind int

const (
	// LabelElement holds a bin id, rendered as <dt>.
	LabelElement ElementKind = iota
	// ContentElement holds a bin's contents, rendered as <dd>.
	ContentElement
)

func (k ElementKind) String() string {
	if k == LabelElement {
		return "dt"
	}
	return "dd"
}

// Element is a single display element.
type Element struct {
	Kind ElementKind
	Text string
}

// IsLabel reports whether the element is a label.
func (e Element) IsLabel() bool {
	return e.Kind == LabelElement
}

// Container is an ordered, append-only list of elements.
type Container struct {
	ID string

	mux      sync.Mutex
	children []Element
}

// Append adds elements to the end of the container.
// Elements passed in one call are never interleaved with those of a concurrent call.
func (c *Container) Append(elements ...Element) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.children = append(c.children, elements...)
}

// Children returns a copy of the container's elements in append order.
func (c *Container) Children() []Element {
	c.mux.Lock()
	defer c.mux.Unlock()
	return append([]Element(nil), c.children...)
}

// Len returns the number of elements in the container.
func (c *Container) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.children)
}

// Document is a set of containers addressed by id.
type Document struct {
	Title string

	mux        sync.RWMutex
	containers map[string]*Container
}

// NewDocument returns a document with an empty container for each id.
func NewDocument(title string, ids ...string) *Document {
	doc := &Document{Title: title, containers: map[string]*Container{}}
	for _, id := range ids {
		doc.AddContainer(id)
	}
	return doc
}

// NewResultsDocument returns a document holding the results container.
func NewResultsDocument(title string) *Document {
	return NewDocument(title, ResultsContainerID)
}

// AddContainer adds an empty container, or returns the existing one with that id.
func (d *Document) AddContainer(id string) *Container {
	d.mux.Lock()
	defer d.mux.Unlock()

	if container, found := d.containers[id]; found {
		return container
	}

	container := &Container{ID: id}
	d.containers[id] = container
	return container
}

// GetElementByID returns the container with the given id.
func (d *Document) GetElementByID(id string) (*Container, error) {
	d.mux.RLock()
	defer d.mux.RUnlock()

	container, found := d.containers[id]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, id)
	}
	return container, nil
}

// Output formats a container can be rendered in.
const (
	FormatHTML = "html"
	FormatText = "text"
)

var htmlTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<dl id="{{.ID}}">
{{range .Children}}{{if .IsLabel}}<dt>{{.Text}}</dt>
{{else}}<dd>{{.Text}}</dd>
{{end}}{{end}}</dl>
</body>
</html>
`))

// textEscaper keeps every label/content pair on a single line of the text format.
var textEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Render writes the container with the given id to w.
// The html format is a definition list. The text format is one "label<TAB>content" line per pair,
// with backslashes, tabs and line breaks escaped as \\, \t, \n and \r.
func (d *Document) Render(w io.Writer, id, format string) error {
	container, err := d.GetElementByID(id)
	if err != nil {
		return err
	}

	children := container.Children()
	switch format {
	case FormatHTML:
		return htmlTemplate.Execute(w, struct {
			Title    string
			ID       string
			Children []Element
		}{d.Title, container.ID, children})
	case FormatText:
		for _, element := range children {
			separator := "\n"
			if element.IsLabel() {
				separator = "\t"
			}
			if _, err := io.WriteString(w, textEscaper.Replace(element.Text)+separator); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown output format %q", format)
}
