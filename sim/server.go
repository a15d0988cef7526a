package sim

import (
	"github.com/pkg/errors"
)

// Server serves at most one job at a time.
type Server struct {
	index int
	job   *Job

	// bookkeeping for utilization reporting
	jobsServed int
	busyTime   float64
}

func newServer(index int) *Server {
	return &Server{index: index}
}

// Index returns the server's position in its controller.
func (s *Server) Index() int { return s.index }

// IsBusy reports whether the server holds a job.
func (s *Server) IsBusy() bool { return s.job != nil }

// Job returns the job in service, or nil when idle.
func (s *Server) Job() *Job { return s.job }

// JobsServed returns the number of stages this server has completed.
func (s *Server) JobsServed() int { return s.jobsServed }

// BusyTime returns the total time spent serving stages.
func (s *Server) BusyTime() float64 { return s.busyTime }

// RecvJob takes ownership of job, consumes its next stage and schedules its
// departure at now plus the stage duration.
func (s *Server) RecvJob(job *Job, now float64) error {
	if s.job != nil {
		return errors.Wrapf(ErrServerBusy, "server %d holds %s", s.index, s.job.ID)
	}
	d, err := job.NextStageDuration()
	if err != nil {
		return errors.Wrapf(err, "server %d", s.index)
	}
	job.SetDepartureTime(now + d)
	job.state = JobInService
	s.job = job
	s.busyTime += d
	return nil
}

// DepartJob releases the job in service after recording its completion.
func (s *Server) DepartJob() (*Job, error) {
	if s.job == nil {
		return nil, errors.Wrapf(ErrServerIdle, "server %d", s.index)
	}
	job := s.job
	if err := job.RecordCompletion(); err != nil {
		return nil, errors.Wrapf(err, "server %d", s.index)
	}
	s.job = nil
	s.jobsServed++
	return job, nil
}

// NextDepartureTime returns the departure time of the job in service, or
// +Inf when the server is idle.
func (s *Server) NextDepartureTime() float64 {
	if s.job == nil {
		return never()
	}
	return s.job.DepartureTime()
}

// ServerController owns a fixed pool of servers addressed by index. The pool
// is created once and never resized.
type ServerController struct {
	servers []*Server
}

// NewServerController creates a pool of n idle servers indexed 0..n-1.
func NewServerController(n int) *ServerController {
	servers := make([]*Server, n)
	for i := range servers {
		servers[i] = newServer(i)
	}
	return &ServerController{servers: servers}
}

// Len returns the pool size.
func (sc *ServerController) Len() int { return len(sc.servers) }

// Server returns the server at index.
func (sc *ServerController) Server(index int) (*Server, error) {
	if index < 0 || index >= len(sc.servers) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, pool size %d", index, len(sc.servers))
	}
	return sc.servers[index], nil
}

// Servers returns the pool for iteration. Callers must not modify the slice.
func (sc *ServerController) Servers() []*Server { return sc.servers }

// FindIdleServer returns the lowest index among idle servers. The boolean
// is false when every server is busy.
func (sc *ServerController) FindIdleServer() (int, bool) {
	for i, s := range sc.servers {
		if !s.IsBusy() {
			return i, true
		}
	}
	return -1, false
}

// EarliestDeparture returns the smallest pending departure time and the
// server holding it, ties going to the lowest index. The boolean is false
// (with time +Inf and index -1) when no server is busy.
func (sc *ServerController) EarliestDeparture() (float64, int, bool) {
	t, idx := never(), -1
	for i, s := range sc.servers {
		if !s.IsBusy() {
			continue
		}
		// strict comparison keeps the lowest index on ties
		if dt := s.NextDepartureTime(); idx < 0 || dt < t {
			t, idx = dt, i
		}
	}
	return t, idx, idx >= 0
}

// Assign hands job to the server at index, starting its next stage at now.
func (sc *ServerController) Assign(job *Job, index int, now float64) error {
	s, err := sc.Server(index)
	if err != nil {
		return err
	}
	return s.RecvJob(job, now)
}

// Release takes the finished job out of the server at index.
func (sc *ServerController) Release(index int) (*Job, error) {
	s, err := sc.Server(index)
	if err != nil {
		return nil, err
	}
	return s.DepartJob()
}

// AnyBusy reports whether at least one server holds a job.
func (sc *ServerController) AnyBusy() bool {
	for _, s := range sc.servers {
		if s.IsBusy() {
			return true
		}
	}
	return false
}
