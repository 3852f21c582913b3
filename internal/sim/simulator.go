package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/grabsim/internal/pose"
	"go.uber.org/zap"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
	log       *zap.Logger
}

func New(log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Noise < 0 {
		return fmt.Errorf("noise must not be negative, got %f", cfg.Noise)
	}
	if cfg.Solver.Damping < 0 || cfg.Solver.Damping > 1 {
		return fmt.Errorf("damping must be in [0,1], got %f", cfg.Solver.Damping)
	}
	return nil
}

// Session is a run advanced one fixed step at a time.
type Session struct {
	Rig      *Rig
	scenario Scenario
	cfg      Config
	steps    int
	step     int
	t        float64
	log      *zap.Logger
}

// Start validates cfg, builds a rig and lets the scenario set it up.
func (s *Simulator) Start(sc Scenario, cfg Config) (*Session, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	rig := NewRig(cfg, s.log)
	if err := sc.Setup(rig); err != nil {
		return nil, fmt.Errorf("setup %s: %w", sc.Name(), err)
	}
	if rig.Tracked() == nil {
		return nil, fmt.Errorf("setup %s: scenario added no objects", sc.Name())
	}

	return &Session{
		Rig:      rig,
		scenario: sc,
		cfg:      cfg,
		steps:    int(cfg.Duration / cfg.Dt),
		log:      s.log,
	}, nil
}

func (ss *Session) Done() bool    { return ss.step >= ss.steps }
func (ss *Session) Time() float64 { return ss.t }
func (ss *Session) Steps() int    { return ss.steps }

func (ss *Session) Pose() pose.Pose { return ss.Rig.Tracked().Pose() }

// Step runs one fixed step: the scenario moves hands and changes grabs,
// every grabbed object is solved and applied once, then the world resolves
// the kinematic moves.
func (ss *Session) Step() (pose.Pose, error) {
	rig := ss.Rig
	rig.step, rig.time = ss.step, ss.t

	if err := ss.scenario.Step(rig, ss.t); err != nil {
		return pose.Pose{}, SimError{Time: ss.t, Step: ss.step, Message: err.Error()}
	}
	if err := rig.Manager.FixedUpdate(); err != nil {
		return pose.Pose{}, SimError{Time: ss.t, Step: ss.step, Message: err.Error()}
	}
	if err := rig.World.Step(ss.cfg.Dt); err != nil {
		return pose.Pose{}, err
	}

	ss.step++
	ss.t += ss.cfg.Dt

	p := ss.Pose()
	if ss.cfg.ValidateState && !p.IsValid() {
		return p, SimError{Time: ss.t, Step: ss.step, Message: "invalid pose (NaN/Inf)"}
	}
	return p, nil
}

func (s *Simulator) Run(ctx context.Context, sc Scenario, cfg Config) (*Result, error) {
	ss, err := s.Start(sc, cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Times:       make([]float64, 0, ss.steps+1),
		Poses:       make([]pose.Pose, 0, ss.steps+1),
		Attachments: make([]int, 0, ss.steps+1),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	tracked := ss.Rig.Tracked().Name
	record := func(p pose.Pose, t float64) {
		result.Times = append(result.Times, t)
		result.Poses = append(result.Poses, p)
		result.Attachments = append(result.Attachments, ss.Rig.Holding(tracked))
		for _, m := range s.metrics {
			m.Observe(p, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(p, t)
		}
	}
	record(ss.Pose(), 0)

	for !ss.Done() {
		select {
		case <-ctx.Done():
			result.Events = ss.Rig.Events()
			return result, ctx.Err()
		default:
		}

		p, err := ss.Step()
		if err != nil {
			s.log.Warn("step failed", zap.String("scenario", sc.Name()), zap.Error(err))
			result.Errors = append(result.Errors, err)
			break
		}
		result.StepsTaken++
		record(p, ss.Time())
	}

	result.Events = ss.Rig.Events()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run complete",
		zap.String("scenario", sc.Name()),
		zap.Int("steps", result.StepsTaken),
		zap.Int("events", len(result.Events)))
	return result, nil
}
