package replay

import "fmt"

type ReplayError struct {
	StepIndex int32          `yaml:"step_index" json:"step_index"`
	Reason    string         `yaml:"reason" json:"reason"`
	Message   string         `yaml:"message" json:"message"`
	Expected  *ExpectedState `yaml:"expected,omitempty" json:"expected,omitempty"`
}

type ExpectedState struct {
	Seat  int      `yaml:"seat" json:"seat"`
	Phase string   `yaml:"phase,omitempty" json:"phase,omitempty"`
	Hand  []string `yaml:"hand,omitempty" json:"hand,omitempty"`
	Legal []string `yaml:"legal,omitempty" json:"legal,omitempty"`
	Count int      `yaml:"count,omitempty" json:"count,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}
