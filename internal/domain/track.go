package domain

// TrackTag names one of the event's themed tracks.
type TrackTag string

const (
	TrackMuzhestvo   TrackTag = "Мужество"
	TrackVolya       TrackTag = "Воля"
	TrackTrud        TrackTag = "Труд"
	TrackUporstvo    TrackTag = "Упорство"
	TrackUniversitet TrackTag = "Университет"
)

// AllTracks lists every track of the event in presentation order.
func AllTracks() []TrackTag {
	return []TrackTag{TrackMuzhestvo, TrackVolya, TrackTrud, TrackUporstvo, TrackUniversitet}
}

// SoloTrack is the single track available to one-member teams.
const SoloTrack = TrackUniversitet

// ParseTrackTag maps a textual tag to a TrackTag, reporting whether the
// input named a known track.
func ParseTrackTag(s string) (TrackTag, bool) {
	for _, tag := range AllTracks() {
		if s == string(tag) {
			return tag, true
		}
	}
	return "", false
}

// TaskStatus is the per-team state of a task, derived from the answer set.
type TaskStatus string

const (
	// TaskNotAvailable means at least one dependency is not yet solved.
	TaskNotAvailable TaskStatus = "not_available"
	// TaskAvailable means the task is unlocked but not attempted.
	TaskAvailable TaskStatus = "available"
	// TaskInProgress means the task was attempted but not yet solved.
	TaskInProgress TaskStatus = "in_progress"
	// TaskCompleted means the task has a correct answer.
	TaskCompleted TaskStatus = "completed"
)

// Track is a themed bundle of tasks a team progresses through as a unit.
type Track struct {
	tag         TrackTag
	description string
	mediaID     MediaID
	tasks       map[TaskID]*Task
}

// NewTrack builds a track from its task list.
func NewTrack(tag TrackTag, description string, mediaID MediaID, tasks []*Task) *Track {
	m := make(map[TaskID]*Task, len(tasks))
	for _, t := range tasks {
		m[t.ID()] = t
	}
	return &Track{tag: tag, description: description, mediaID: mediaID, tasks: m}
}

func (t *Track) Tag() TrackTag { return t.tag }
func (t *Track) Description() string { return t.description }
func (t *Track) MediaID() MediaID { return t.mediaID }

// Task returns the track's task with the given id, or nil.
func (t *Track) Task(id TaskID) *Task { return t.tasks[id] }

// Tasks returns all tasks of the track in unspecified order.
func (t *Track) Tasks() []*Task {
	out := make([]*Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		out = append(out, task)
	}
	return out
}

// Progress derives the team's read-only progress view from its answers.
func (t *Track) Progress(answers []Answer) *TrackProgress {
	points := make(map[TaskID]Points, len(answers))
	for _, a := range answers {
		points[a.TaskID()] = a.Points()
	}
	return &TrackProgress{track: t, answers: points}
}

// TrackProgress is a derived view over a track and one team's answers.
// It is never stored; statuses are recomputed from the answer set.
type TrackProgress struct {
	track   *Track
	answers map[TaskID]Points
}

// TaskStatus derives the status of one task. Returns false if the task
// does not belong to the track.
func (p *TrackProgress) TaskStatus(id TaskID) (TaskStatus, bool) {
	task := p.track.Task(id)
	if task == nil {
		return "", false
	}
	if points, ok := p.answers[id]; ok {
		if points.IsPositive() {
			return TaskCompleted, true
		}
		return TaskInProgress, true
	}
	for _, dep := range task.Dependencies() {
		if !p.answers[dep].IsPositive() {
			return TaskNotAvailable, true
		}
	}
	return TaskAvailable, true
}

// CompletedTasks returns the tasks the team has solved.
func (p *TrackProgress) CompletedTasks() []*Task {
	return p.filter(func(s TaskStatus) bool { return s == TaskCompleted })
}

// AvailableTasks returns the tasks the team can currently work on:
// unlocked but unsolved, including attempted ones.
func (p *TrackProgress) AvailableTasks() []*Task {
	return p.filter(func(s TaskStatus) bool {
		return s == TaskAvailable || s == TaskInProgress
	})
}

func (p *TrackProgress) filter(keep func(TaskStatus) bool) []*Task {
	var out []*Task
	for id, task := range p.track.tasks {
		if status, ok := p.TaskStatus(id); ok && keep(status) {
			out = append(out, task)
		}
	}
	return out
}

// MaxPoints sums the point value of every task in the track.
func (p *TrackProgress) MaxPoints() Points {
	var sum Points
	for _, task := range p.track.tasks {
		sum += task.Points()
	}
	return sum
}

// Points sums the points the team has earned on this track.
func (p *TrackProgress) Points() Points {
	var sum Points
	for _, pts := range p.answers {
		sum += pts
	}
	return sum
}

// Percent is the earned share of the track's total points, 0 when the
// track has no scored tasks.
func (p *TrackProgress) Percent() float64 {
	max := p.MaxPoints()
	if max.IsZero() {
		return 0
	}
	return float64(p.Points()) / float64(max)
}

// FullCompleted reports whether every reachable task is completed. Tasks
// whose dependency chain is broken (a missing task or a cycle) can never
// unlock and are excluded, so a track with an unreachable bonus task can
// still finish.
func (p *TrackProgress) FullCompleted() bool {
	reachable := p.reachableTasks()
	if len(reachable) == 0 {
		return false
	}
	for id := range reachable {
		if status, ok := p.TaskStatus(id); !ok || status != TaskCompleted {
			return false
		}
	}
	return true
}

// reachableTasks computes the fixpoint of "all dependencies are
// reachable" over the track's dependency graph.
func (p *TrackProgress) reachableTasks() map[TaskID]bool {
	reachable := make(map[TaskID]bool, len(p.track.tasks))
	for changed := true; changed; {
		changed = false
		for id, task := range p.track.tasks {
			if reachable[id] {
				continue
			}
			ok := true
			for _, dep := range task.Dependencies() {
				if !reachable[dep] {
					ok = false
					break
				}
			}
			if ok {
				reachable[id] = true
				changed = true
			}
		}
	}
	return reachable
}
