package binsweep

// ResultSink appends every found bin to the results container as a label followed by its contents.
type ResultSink struct {
	results *Container
}

// NewResultSink returns a sink writing into doc's results container.
// It fails with ErrContainerNotFound when doc has no results container.
func NewResultSink(doc *Document) (*ResultSink, error) {
	results, err := doc.GetElementByID(ResultsContainerID)
	if err != nil {
		return nil, err
	}
	return &ResultSink{results: results}, nil
}

// Output appends a label with bin and a content block with contents, in that order.
// It always appends, even when the same bin was output before.
func (s *ResultSink) Output(bin, contents string) {
	s.results.Append(
		Element{Kind: LabelElement, Text: bin},
		Element{Kind: ContentElement, Text: contents},
	)
}

// OnSuccess outputs the bin and its raw body.
func (s *ResultSink) OnSuccess(result *Result) error {
	if result == nil {
		s.Output("", "")
		return nil
	}
	s.Output(result.Bin, result.Body)
	return nil
}

// Name identifies the sink in logs.
func (s *ResultSink) Name() string {
	return "results"
}
