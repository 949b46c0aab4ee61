package task

// Request is a decoded task description. Optional numeric arguments are
// pointers so an explicit zero is distinguishable from an omitted value.
type Request struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Task        string   `json:"task" yaml:"task"`
	Operators   []string `json:"operators,omitempty" yaml:"operators,omitempty"`
	Program     string   `json:"program,omitempty" yaml:"program,omitempty"`
	State       string   `json:"state,omitempty" yaml:"state,omitempty"`
	Hamiltonian string   `json:"hamiltonian,omitempty" yaml:"hamiltonian,omitempty"`
	Qubits      *int     `json:"num_qubits,omitempty" yaml:"num_qubits,omitempty"`
	Marked      *int     `json:"marked_item,omitempty" yaml:"marked_item,omitempty"`
	NMax        *int     `json:"n_max,omitempty" yaml:"n_max,omitempty"`
	Omega       *float64 `json:"omega,omitempty" yaml:"omega,omitempty"`
	Length      *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Time        *float64 `json:"time,omitempty" yaml:"time,omitempty"`
}

// Defaults applied when a request omits an argument.
const (
	DefaultGroverQubits = 2
	DefaultGroverMarked = 1
	DefaultSHOLevels    = 10
	DefaultOmega        = 1.0
	DefaultBoxLength    = 1.0
	DefaultBoxLevels    = 5
)

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Int and Float return pointers for building requests in code.
func Int(v int) *int { return &v }

func Float(v float64) *float64 { return &v }
