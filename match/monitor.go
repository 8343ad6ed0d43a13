package match

import "github.com/poiesic/kindred/core"

// MatchMonitor provides hooks to observe the matching process.
// Implement this interface to track intermediate scores during a search.
type MatchMonitor interface {
	Start(userId core.ID)
	AfterForward(scores map[core.ID]float64)
	AfterBackward(scores map[core.ID]float64)
	AfterTopicExpansion(similarities map[core.ID]float64)
	Finish(results []*core.MatchResult)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.ID)                           {}
func (n *noopMonitor) AfterForward(_ map[core.ID]float64)        {}
func (n *noopMonitor) AfterBackward(_ map[core.ID]float64)       {}
func (n *noopMonitor) AfterTopicExpansion(_ map[core.ID]float64) {}
func (n *noopMonitor) Finish(_ []*core.MatchResult)              {}
