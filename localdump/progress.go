package localdump

// Progress is one event of an export run.  It is one of StartEvent, PageEvent, IndexEvent,
// RawJSONEvent or CompleteEvent.
type Progress interface {
	isProgress()
}

// StartEvent is sent once the collection has been listed.
type StartEvent struct {
	TotalPages int
}

// PageEvent reports one page, successful or not.  CurrentPage counts from 1.
type PageEvent struct {
	CurrentPage int
	TotalPages  int
	PageID      string
	OutputPath  string
	Err         error
}

func (e PageEvent) Failed() bool {
	return e.Err != nil
}

type IndexEvent struct {
	Directory string
}

type RawJSONEvent struct {
	Path string
}

type CompleteEvent struct{}

func (StartEvent) isProgress()    {}
func (PageEvent) isProgress()     {}
func (IndexEvent) isProgress()    {}
func (RawJSONEvent) isProgress()  {}
func (CompleteEvent) isProgress() {}
