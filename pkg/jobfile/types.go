package jobfile

// File describes several match jobs sharing a base input directory.
type File struct {
	BasePath string `yaml:"base_path"`
	Jobs     []Job  `yaml:"jobs"`
}

// Job is one N-way match. String-or-list fields accept either a single value
// shared by every input or one value per input.
type Job struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	InputDir    string   `yaml:"input_dir,omitempty"`
	Inputs      []string `yaml:"inputs"`
	Radius      float64  `yaml:"radius"`

	Values StringOrList `yaml:"values,omitempty"`
	Ifmt   StringOrList `yaml:"ifmt,omitempty"`

	Output string `yaml:"output,omitempty"`
	Ofmt   string `yaml:"ofmt,omitempty"`

	Suffixes       []string `yaml:"suffixes,omitempty"`
	OmitSuffixes   bool     `yaml:"omit_suffixes,omitempty"`
	SuffixedValues bool     `yaml:"suffixed_values,omitempty"`

	Matcher   string `yaml:"matcher,omitempty"`
	MultiMode string `yaml:"multimode,omitempty"`
	Join      string `yaml:"join,omitempty"`
	Runner    string `yaml:"runner,omitempty"`
	Progress  string `yaml:"progress,omitempty"`
	FixCols   string `yaml:"fixcols,omitempty"`

	Reference     string `yaml:"reference,omitempty"`
	InputCommand  string `yaml:"icmd,omitempty"`
	OutputCommand string `yaml:"ocmd,omitempty"`

	CommandFile string `yaml:"command_file,omitempty"`
	WorkDir     string `yaml:"work_dir,omitempty"`
}
