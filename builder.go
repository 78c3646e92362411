package trafficflow

// SchedulerBuilder provides a fluent interface for configuring a Scheduler
type SchedulerBuilder interface {
	// Input
	WithCounts(counts VehicleCounts) SchedulerBuilder
	WithCount(direction Direction, count int) SchedulerBuilder

	// Timing
	WithPolicy(policy TimingPolicy) SchedulerBuilder

	// Observation
	WithObserver(observer Observer) SchedulerBuilder
	WithRunID(id string) SchedulerBuilder

	Build() (*Scheduler, error)
}

type schedulerBuilder struct {
	counts    VehicleCounts
	policy    TimingPolicy
	observers []Observer
	runID     string
}

// NewScheduler starts building a scheduler with the default timing policy
func NewScheduler() SchedulerBuilder {
	return &schedulerBuilder{
		counts: make(VehicleCounts),
		policy: DefaultTimingPolicy(),
	}
}

func (b *schedulerBuilder) WithCounts(counts VehicleCounts) SchedulerBuilder {
	for d, n := range counts {
		b.counts[d] = n
	}
	return b
}

func (b *schedulerBuilder) WithCount(direction Direction, count int) SchedulerBuilder {
	b.counts[direction] = count
	return b
}

func (b *schedulerBuilder) WithPolicy(policy TimingPolicy) SchedulerBuilder {
	b.policy = policy
	return b
}

func (b *schedulerBuilder) WithObserver(observer Observer) SchedulerBuilder {
	if observer != nil {
		b.observers = append(b.observers, observer)
	}
	return b
}

func (b *schedulerBuilder) WithRunID(id string) SchedulerBuilder {
	b.runID = id
	return b
}

// Build validates the counts and policy before any scheduling happens
func (b *schedulerBuilder) Build() (*Scheduler, error) {
	if err := b.counts.Validate(); err != nil {
		return nil, err
	}
	if err := b.policy.Validate(); err != nil {
		return nil, err
	}

	s := newScheduler(b.counts, b.policy, b.runID)
	for _, o := range b.observers {
		s.observers.AddObserver(o)
	}
	return s, nil
}
