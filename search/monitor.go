package search

import (
	"github.com/Swetcha17/recruitment-automation/core"
	"github.com/Swetcha17/recruitment-automation/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, opts Options)
	AfterSemanticSearch(hits []index.Hit)
	AfterKeywordSearch(hits []index.Hit)
	AfterFusion(scores map[core.ID]float64)
	AfterProfileRetrieval(profiles []*core.CandidateProfile)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ Options)                        {}
func (n *noopMonitor) AfterSemanticSearch(_ []index.Hit)                {}
func (n *noopMonitor) AfterKeywordSearch(_ []index.Hit)                 {}
func (n *noopMonitor) AfterFusion(_ map[core.ID]float64)                {}
func (n *noopMonitor) AfterProfileRetrieval(_ []*core.CandidateProfile) {}
func (n *noopMonitor) Finish(_ []*Result)                               {}
