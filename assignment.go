package tractfilter

// Unassigned marks a (streamline, level, trial) slot that no cluster claimed:
// the streamline's parent cluster was too small to subdivide, or the trial
// never reached that level.
const Unassigned = -1

// ClusterAssignment records, for every streamline, schedule level and trial,
// the id of the cluster the streamline fell into. Ids are unique only within
// one (level, trial) slice. Storage is one preallocated arena; trials own
// disjoint slots, so concurrent trials may write without locking.
type ClusterAssignment struct {
	n, levels, trials int
	ids               []int32
}

// NewClusterAssignment returns an n×levels×trials assignment with every slot
// Unassigned.
func NewClusterAssignment(n, levels, trials int) *ClusterAssignment {
	ids := make([]int32, n*levels*trials)
	for i := range ids {
		ids[i] = Unassigned
	}
	return &ClusterAssignment{n: n, levels: levels, trials: trials, ids: ids}
}

// Dims returns the number of streamlines, levels and trials.
func (a *ClusterAssignment) Dims() (n, levels, trials int) {
	return a.n, a.levels, a.trials
}

func (a *ClusterAssignment) offset(i, level, trial int) int {
	return (trial*a.n+i)*a.levels + level
}

// At returns the cluster id of streamline i at level in trial, or Unassigned.
func (a *ClusterAssignment) At(i, level, trial int) int {
	return int(a.ids[a.offset(i, level, trial)])
}

func (a *ClusterAssignment) set(i, level, trial, id int) {
	a.ids[a.offset(i, level, trial)] = int32(id)
}

// Depth returns how many levels streamline i was assigned at in trial.
func (a *ClusterAssignment) Depth(i, trial int) int {
	base := a.offset(i, 0, trial)
	depth := 0
	for _, id := range a.ids[base : base+a.levels] {
		if id != Unassigned {
			depth++
		}
	}
	return depth
}
