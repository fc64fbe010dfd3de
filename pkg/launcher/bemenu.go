package launcher

// Bemenu runs bemenu
type Bemenu struct {
	command string
	args    []string
}

// NewBemenu returns a bemenu launcher with extra args
func NewBemenu(args []string) *Bemenu {
	return &Bemenu{command: "bemenu", args: args}
}

func (b *Bemenu) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, b.args...)
	args = append(args, "-p", prompt)
	return run(b.command, args, options)
}

func (b *Bemenu) Name() string {
	return "bemenu"
}

func (b *Bemenu) Args() []string {
	return b.args
}
