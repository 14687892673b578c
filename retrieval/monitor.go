package retrieval

import "github.com/stayely/pitia-assistente/core"

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during retrieval.
type Monitor interface {
	Start(query string)
	AfterSearch(urls []string)
	PageFetched(page *core.PageContent)
	EarlyExit(page *core.PageContent)
	Finish(pages []*core.PageContent)
}

// noopMonitor ignores all callbacks.
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (noopMonitor) Start(string)                    {}
func (noopMonitor) AfterSearch([]string)            {}
func (noopMonitor) PageFetched(*core.PageContent)   {}
func (noopMonitor) EarlyExit(*core.PageContent)     {}
func (noopMonitor) Finish([]*core.PageContent)      {}
