package commandstructure

// Command is one step of the image pipeline. It takes encoded image bytes
// and returns encoded image bytes.
type Command interface {
	Name() string
	Execute(imageData []byte) ([]byte, error)
}

// CommandFactory creates a command from configuration parameters
type CommandFactory func(params map[string]any) (Command, error)

// CommandConfig names a registered command together with its parameters
type CommandConfig struct {
	Name   string
	Params map[string]any
}
