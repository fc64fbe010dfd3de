package launcher

// Fuzzel runs fuzzel
type Fuzzel struct {
	command string
	args    []string
}

// NewFuzzel returns a fuzzel launcher with extra args
func NewFuzzel(args []string) *Fuzzel {
	return &Fuzzel{command: "fuzzel", args: args}
}

func (f *Fuzzel) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, f.args...)
	args = append(args, "--dmenu", "--prompt", prompt+" ")
	return run(f.command, args, options)
}

func (f *Fuzzel) Name() string {
	return "fuzzel"
}

func (f *Fuzzel) Args() []string {
	return f.args
}
