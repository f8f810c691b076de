package proto

var (
	VOID = &Void{}
)

// Valid returns true if the command is one of the values the control plane accepts.
func (x AMCommand) Valid() bool {
	_, ok := AMCommand_name[int32(x)]
	return ok
}
