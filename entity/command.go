package entity

// Command is an action name plus ordered string arguments. Arguments are
// always identifiers (ids, enum values, provider tags), never free text,
// so they survive the token round trip through the chat platform.
type Command struct {
	Name string   `json:"name" bson:"name"`
	Args []string `json:"args" bson:"args"`
}

// NewCommand builds a command value.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Arg returns the i-th argument, empty when out of range.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
