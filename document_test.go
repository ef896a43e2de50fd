package binsweep

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetElementByIDMissingContainer(t *testing.T) {
	doc := NewDocument("empty")

	_, err := doc.GetElementByID(ResultsContainerID)
	assert.True(t, errors.Is(err, ErrContainerNotFound))
}

func TestAddContainerReturnsExisting(t *testing.T) {
	doc := NewResultsDocument("results")
	container, err := doc.GetElementByID(ResultsContainerID)
	require.NoError(t, err)

	assert.Same(t, container, doc.AddContainer(ResultsContainerID))
}

func TestConcurrentAppendsKeepPairsTogether(t *testing.T) {
	container := &Container{ID: ResultsContainerID}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			container.Append(Element{Kind: LabelElement, Text: "bin"}, Element{Kind: ContentElement, Text: "body"})
		}()
	}
	wg.Wait()

	children := container.Children()
	require.Len(t, children, 100)
	for i := 0; i < len(children); i += 2 {
		assert.Equal(t, LabelElement, children[i].Kind)
		assert.Equal(t, ContentElement, children[i+1].Kind)
	}
}

func TestRenderText(t *testing.T) {
	doc := NewResultsDocument("run")
	sink, err := NewResultSink(doc)
	require.NoError(t, err)

	sink.Output("abc", `{"a":1}`)
	sink.Output("abd", `[]`)

	var out bytes.Buffer
	require.NoError(t, doc.Render(&out, ResultsContainerID, FormatText))
	assert.Equal(t, "abc\t{\"a\":1}\nabd\t[]\n", out.String())
}

func TestRenderTextKeepsMultiLineBodiesOnOneLine(t *testing.T) {
	doc := NewResultsDocument("run")
	sink, err := NewResultSink(doc)
	require.NoError(t, err)

	sink.Output("abc", "{\n\t\"path\": \"C:\\tmp\"\r\n}")
	sink.Output("abd", "[]")

	var out bytes.Buffer
	require.NoError(t, doc.Render(&out, ResultsContainerID, FormatText))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `abc	{\n\t"path": "C:\\tmp"\r\n}`, lines[0])
	assert.Equal(t, "abd\t[]", lines[1])
}

func TestRenderHTMLEscapesContents(t *testing.T) {
	doc := NewResultsDocument("run 1")
	sink, err := NewResultSink(doc)
	require.NoError(t, err)

	sink.Output("abc", `<script>alert(1)</script>`)

	var out bytes.Buffer
	require.NoError(t, doc.Render(&out, ResultsContainerID, FormatHTML))

	html := out.String()
	assert.Contains(t, html, `<title>run 1</title>`)
	assert.Contains(t, html, `<dl id="results">`)
	assert.Contains(t, html, `<dt>abc</dt>`)
	assert.Contains(t, html, `<dd>&lt;script&gt;alert(1)&lt;/script&gt;</dd>`)
	assert.True(t, strings.Index(html, "<dt>") < strings.Index(html, "<dd>"))
}

func TestRenderUnknownFormat(t *testing.T) {
	doc := NewResultsDocument("run")
	assert.Error(t, doc.Render(&bytes.Buffer{}, ResultsContainerID, "xml"))
}
