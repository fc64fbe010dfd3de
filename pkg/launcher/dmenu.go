package launcher

// Dmenu runs dmenu
type Dmenu struct {
	command string
	args    []string
}

// NewDmenu returns a dmenu launcher with extra args
func NewDmenu(args []string) *Dmenu {
	return &Dmenu{command: "dmenu", args: args}
}

func (d *Dmenu) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, d.args...)
	args = append(args, "-p", prompt)
	return run(d.command, args, options)
}

func (d *Dmenu) Name() string {
	return "dmenu"
}

func (d *Dmenu) Args() []string {
	return d.args
}
