package replay

// HandSpec describes one hand to reconstruct. Seats without a hand are dealt
// from the rest of the deck; Deck, when given, replaces the whole deal.
type HandSpec struct {
	Players int          `yaml:"players" json:"players"`
	Dealer  int          `yaml:"dealer" json:"dealer"`
	Seats   []SeatSpec   `yaml:"seats" json:"seats"`
	Starter string       `yaml:"starter,omitempty" json:"starter,omitempty"`
	Deck    []string     `yaml:"deck,omitempty" json:"deck,omitempty"`
	Actions []ActionSpec `yaml:"actions,omitempty" json:"actions,omitempty"`
	RNG     *RNGSpec     `yaml:"rng,omitempty" json:"rng,omitempty"`
}

type SeatSpec struct {
	Seat int      `yaml:"seat" json:"seat"`
	Name string   `yaml:"name,omitempty" json:"name,omitempty"`
	Hand []string `yaml:"hand,omitempty" json:"hand,omitempty"`
}

type ActionSpec struct {
	Phase string `yaml:"phase" json:"phase"`
	Seat  int    `yaml:"seat" json:"seat"`
	Card  string `yaml:"card,omitempty" json:"card,omitempty"`
}

type RNGSpec struct {
	Seed int64 `yaml:"seed" json:"seed"`
}

type Tape struct {
	TapeVersion int      `yaml:"tape_version" json:"tape_version"`
	Players     int      `yaml:"players" json:"players"`
	Dealer      int      `yaml:"dealer" json:"dealer"`
	Names       []string `yaml:"names" json:"names"`
	Events      []Event  `yaml:"events" json:"events"`
}

// Event is one line of a tape. Type is one of handStart, deal, discard,
// starter, heels, play, show, crib, handEnd, gameEnd.
type Event struct {
	Type   string   `yaml:"type" json:"type"`
	Seq    uint64   `yaml:"seq" json:"seq"`
	Seat   int      `yaml:"seat" json:"seat"`
	Cards  []string `yaml:"cards,omitempty" json:"cards,omitempty"`
	Points int      `yaml:"points,omitempty" json:"points,omitempty"`
	Count  int      `yaml:"count,omitempty" json:"count,omitempty"`
	Scores []int    `yaml:"scores,omitempty" json:"scores,omitempty"`
}
