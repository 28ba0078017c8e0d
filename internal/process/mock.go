package process

// MockRouter implements Router for testing.
type MockRouter struct {
	Alive     bool
	Pid       int
	PidErr    error
	ReloadErr error

	// Reloads counts Reload calls, including failed ones.
	Reloads int
}

func (m *MockRouter) IsAlive() bool {
	return m.Alive
}

func (m *MockRouter) PID() (int, error) {
	if m.PidErr != nil {
		return 0, m.PidErr
	}
	return m.Pid, nil
}

func (m *MockRouter) Reload() error {
	m.Reloads++
	return m.ReloadErr
}
