package parser

// Role distinguishes the two grammar positions a spelling can own: Nud
// entries start an expression, Led entries continue one. A spelling may
// own both ("-" is a prefix Nud and an infix-flat Led).
type Role int

const (
	Nud Role = iota
	Led
)

func (r Role) String() string {
	if r == Led {
		return "Led"
	}
	return "Nud"
}

// Fixity is the closed set of grammar disciplines the parser dispatches
// on. There are no function values in the table: parseNud/parseLed match
// on the tag exhaustively.
type Fixity int

const (
	PrefixPlain Fixity = iota
	InfixLeft
	InfixRight
	InfixFlat
	Postfix
	CallBracket
	GroupOpen
	ListOpen
	Terminator
)

var fixityNames = map[Fixity]string{
	PrefixPlain: "PrefixPlain",
	InfixLeft:   "InfixLeft",
	InfixRight:  "InfixRight",
	InfixFlat:   "InfixFlat",
	Postfix:     "Postfix",
	CallBracket: "CallBracket",
	GroupOpen:   "GroupOpen",
	ListOpen:    "ListOpen",
	Terminator:  "Terminator",
}

func (f Fixity) String() string {
	if name, ok := fixityNames[f]; ok {
		return name
	}
	return "Terminator"
}

// Entry describes one grammar role of an operator spelling.
type Entry struct {
	Spelling string
	Power    int
	Fixity   Fixity
	Name     string
}

// Registry maps operator spellings to their grammar entries, one table
// per role. It is built once and read-only afterwards; concurrent parses
// share it safely.
type Registry struct {
	nud map[string]Entry
	led map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{
		nud: make(map[string]Entry),
		led: make(map[string]Entry),
	}
}

func (r *Registry) Register(role Role, spelling string, power int, fixity Fixity, name string) {
	entry := Entry{Spelling: spelling, Power: power, Fixity: fixity, Name: name}
	if role == Nud {
		r.nud[spelling] = entry
	} else {
		r.led[spelling] = entry
	}
}

func (r *Registry) Lookup(spelling string, role Role) (Entry, bool) {
	if role == Nud {
		entry, ok := r.nud[spelling]
		return entry, ok
	}
	entry, ok := r.led[spelling]
	return entry, ok
}

// Spellings returns every spelling registered for a role, for table
// consistency checks.
func (r *Registry) Spellings(role Role) []string {
	table := r.led
	if role == Nud {
		table = r.nud
	}
	spellings := make([]string, 0, len(table))
	for spelling := range table {
		spellings = append(spellings, spelling)
	}
	return spellings
}

// DefaultRegistry is the Wolfram Language operator table, built once at
// package initialization and never mutated afterwards.
var DefaultRegistry = buildDefaultRegistry()

// buildDefaultRegistry encodes the grammar's binding powers. The anchors:
// terminators at 0, the assignment family at 40 (below everything, so
// a=b+c is a=(b+c)), the call bracket at 745 (above every arithmetic
// operator, so f[x]+1 is (f[x])+1), and :: at 780, the top of the table.
func buildDefaultRegistry() *Registry {
	r := NewRegistry()

	// Terminators are consumed by the enclosing construct (sequence,
	// argument list), never by the expression loop.
	for _, spelling := range []string{",", ";", "]", ")", "}"} {
		r.Register(Led, spelling, 0, Terminator, "")
	}

	r.Register(Nud, "(", 0, GroupOpen, "Group")
	r.Register(Nud, "{", 0, ListOpen, "List")

	r.Register(Nud, "-", 480, PrefixPlain, "Minus")
	r.Register(Nud, "+", 480, PrefixPlain, "Plus")

	r.Register(Led, ">>", 30, InfixLeft, "Put")
	r.Register(Led, ">>>", 30, InfixLeft, "PutAppend")

	r.Register(Led, "=", 40, InfixRight, "Set")
	r.Register(Led, ":=", 40, InfixRight, "SetDelayed")
	r.Register(Led, "^=", 40, InfixRight, "UpSet")
	r.Register(Led, "/:", 40, InfixRight, "TagSet")
	r.Register(Led, "=.", 40, Postfix, "Unset")

	r.Register(Led, "|->", 90, InfixRight, "Function")

	r.Register(Led, "->", 120, InfixRight, "Rule")
	r.Register(Led, ":>", 120, InfixRight, "RuleDelayed")

	r.Register(Led, ":", 150, InfixLeft, "Pattern")
	r.Register(Led, "|", 160, InfixFlat, "Alternatives")

	r.Register(Led, "..", 170, Postfix, "Repeated")
	r.Register(Led, "...", 170, Postfix, "RepeatedNull")

	r.Register(Led, "+", 330, InfixFlat, "Plus")
	r.Register(Led, "-", 330, InfixFlat, "Minus")

	r.Register(Led, "*", 410, InfixFlat, "Times")
	r.Register(Led, "/", 470, InfixLeft, "Divide")

	r.Register(Led, "^", 590, InfixRight, "Power")

	r.Register(Led, "/@", 620, InfixRight, "Map")
	r.Register(Led, "//@", 620, InfixRight, "MapAll")
	r.Register(Led, "@@", 620, InfixRight, "Apply")
	r.Register(Led, "@@@", 620, InfixRight, "MapApply")

	r.Register(Led, "[", 745, CallBracket, "Call")

	r.Register(Led, "::", 780, InfixLeft, "MessageName")

	return r
}
