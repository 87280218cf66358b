package commandstructure

import "testing"

// mockCommand counts its executions and delegates to executeFunc
type mockCommand struct {
	name        string
	calls       int
	executeFunc func([]byte) ([]byte, error)
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Execute(imageData []byte) ([]byte, error) {
	m.calls++
	if m.executeFunc != nil {
		return m.executeFunc(imageData)
	}
	return imageData, nil
}

func newMockCommand(name string) *mockCommand {
	return &mockCommand{name: name}
}

func newMockCommandWithError(name string, err error) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func([]byte) ([]byte, error) {
			return nil, err
		},
	}
}

// newAppendingCommand appends "|"+name to its input and records its name in
// order, so tests can check both chaining and execution order.
func newAppendingCommand(name string, order *[]string) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(data []byte) ([]byte, error) {
			*order = append(*order, name)
			out := append([]byte{}, data...)
			return append(out, "|"+name...), nil
		},
	}
}

// useRegistry swaps DefaultRegistry for the duration of the test
func useRegistry(t *testing.T, registry *CommandRegistry) {
	t.Helper()
	original := DefaultRegistry
	DefaultRegistry = registry
	t.Cleanup(func() { DefaultRegistry = original })
}
