package models

// Kind enumerates the event variants.
type Kind int

const (
	KindOther Kind = iota
	KindPass
	KindShot
)

func (k Kind) String() string {
	switch k {
	case KindPass:
		return "Pass"
	case KindShot:
		return "Shot"
	default:
		return "Other"
	}
}

// Event is a discrete match action keyed in the same identifier space as frames.
//
// Implementations are [Pass], [Shot] and [Other]; each variant carries only its own fields.
type Event interface {
	Key() string
	Kind() Kind
	Info() Meta
	sealed()
}

// Meta holds the fields shared by every event variant.
type Meta struct {
	ID     string // Provider event identifier, equal to the key of the matching frame
	Index  int
	Period int
	Minute int
	Second int
	Team   string
	Player string
}

// Pass is a ball movement from Start to End. Nil points mean the source coordinates were malformed.
type Pass struct {
	Meta
	Start   *Point
	End     *Point
	Outcome string // Empty when the pass was completed
}

// Shot is an attempt on goal with an optional expected-goals value.
type Shot struct {
	Meta
	Start   *Point
	XG      *float64
	Outcome string
}

// Other is any event kind the replay does not visualize.
type Other struct {
	Meta
	Type  string
	Start *Point
}

var (
	_ Event = Pass{}
	_ Event = Shot{}
	_ Event = Other{}
)

// failedPassOutcomes are the provider outcomes that mark an unsuccessful pass.
// "Unknown" is not a failure.
var failedPassOutcomes = map[string]bool{
	"Incomplete":       true,
	"Out":              true,
	"Pass Offside":     true,
	"Injury Clearance": true,
}

func (p Pass) Key() string { return p.ID }
func (p Pass) Kind() Kind  { return KindPass }
func (p Pass) Info() Meta  { return p.Meta }
func (Pass) sealed()       {}

// Failed reports whether the pass outcome is a recognized failure.
func (p Pass) Failed() bool { return failedPassOutcomes[p.Outcome] }

func (s Shot) Key() string { return s.ID }
func (s Shot) Kind() Kind  { return KindShot }
func (s Shot) Info() Meta  { return s.Meta }
func (Shot) sealed()       {}

// ExpectedValue returns the shot's xG, or 0 when the provider omitted it.
func (s Shot) ExpectedValue() float64 {
	if s.XG == nil {
		return 0
	}
	return *s.XG
}

func (o Other) Key() string { return o.ID }
func (o Other) Kind() Kind  { return KindOther }
func (o Other) Info() Meta  { return o.Meta }
func (Other) sealed()       {}
