package launcher

// Rofi runs rofi
type Rofi struct {
	command string
	args    []string
}

// NewRofi returns a rofi launcher with extra args
func NewRofi(args []string) *Rofi {
	return &Rofi{command: "rofi", args: args}
}

func (r *Rofi) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, r.args...)
	args = append(args, "-dmenu", "-p", prompt)
	return run(r.command, args, options)
}

func (r *Rofi) Name() string {
	return "rofi"
}

func (r *Rofi) Args() []string {
	return r.args
}
