package task

import (
	"fmt"
	"math/rand"

	"github.com/AbdouB/skillsim/internal/models"
)

// CurriculumError reports a stimulus generator failure mid-run. It is fatal:
// the trial driver aborts the condition rather than record a partial series.
type CurriculumError struct {
	Trial  int
	Reason string
}

func (e *CurriculumError) Error() string {
	return fmt.Sprintf("curriculum failed at trial %d: %s", e.Trial, e.Reason)
}

// Curriculum generates the stimulus sequence for a run, one stimulus per
// trial. Implementations must be deterministic for a given seed so that two
// runs with identical configuration see identical sequences.
type Curriculum interface {
	Next() (models.Stimulus, error)
}

// RandomCurriculum draws stimuli uniformly from the task's stimulus set
// using a dedicated seeded source.
type RandomCurriculum struct {
	stimuli []models.Stimulus
	rng     *rand.Rand
}

// NewRandom creates a uniform random curriculum over the task's stimuli
func NewRandom(t *Task, seed int64) *RandomCurriculum {
	return &RandomCurriculum{
		stimuli: t.Stimuli(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next randomly drawn stimulus
func (c *RandomCurriculum) Next() (models.Stimulus, error) {
	if len(c.stimuli) == 0 {
		return "", &CurriculumError{Trial: 0, Reason: "no stimuli defined"}
	}
	return c.stimuli[c.rng.Intn(len(c.stimuli))], nil
}

// RoundRobinCurriculum cycles through the task's stimuli in canonical order,
// the fixed alternating presentation used in scripted scenarios.
type RoundRobinCurriculum struct {
	stimuli []models.Stimulus
	next    int
}

// NewRoundRobin creates a curriculum that presents stimuli in rotation
func NewRoundRobin(t *Task) *RoundRobinCurriculum {
	return &RoundRobinCurriculum{stimuli: t.Stimuli()}
}

// Next returns the next stimulus in rotation
func (c *RoundRobinCurriculum) Next() (models.Stimulus, error) {
	if len(c.stimuli) == 0 {
		return "", &CurriculumError{Trial: 0, Reason: "no stimuli defined"}
	}
	s := c.stimuli[c.next]
	c.next = (c.next + 1) % len(c.stimuli)
	return s, nil
}

// FixedCurriculum replays a pre-materialized stimulus sequence. The compare
// command uses this to feed the identical sequence to both conditions; it is
// also the one curriculum that can exhaust.
type FixedCurriculum struct {
	sequence []models.Stimulus
	next     int
}

// NewFixed creates a curriculum over an explicit stimulus sequence
func NewFixed(sequence []models.Stimulus) *FixedCurriculum {
	return &FixedCurriculum{sequence: sequence}
}

// Next returns the next stimulus, or a CurriculumError once the sequence
// is exhausted.
func (c *FixedCurriculum) Next() (models.Stimulus, error) {
	if c.next >= len(c.sequence) {
		return "", &CurriculumError{Trial: c.next, Reason: "stimulus sequence exhausted"}
	}
	s := c.sequence[c.next]
	c.next++
	return s, nil
}

// Materialize draws n stimuli from a curriculum into a fixed sequence
func Materialize(c Curriculum, n int) ([]models.Stimulus, error) {
	sequence := make([]models.Stimulus, 0, n)
	for i := 0; i < n; i++ {
		s, err := c.Next()
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, s)
	}
	return sequence, nil
}
