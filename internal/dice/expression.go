package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Upper bounds on a single dice group
const (
	MaxCount = 1000
	MaxFaces = 1000
)

var (
	// count, faces, scale operator, scale, modifier sign, modifier
	notationRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)(?:([*/])(\d+))?(?:([+-])(\d+))?$`)
)

// Expression is an immutable dice group such as 3d6+2 or 4d6/2. A zero
// Multiplier or Divisor is read as 1. Expressions encode as their notation
// in JSON and YAML.
type Expression struct {
	Count      int
	Faces      int
	Multiplier int
	Divisor    int
	Modifier   int
}

// New creates a validated expression of count dice with the given faces
// plus an additive modifier
func New(count, faces, modifier int) (Expression, error) {
	e := Expression{Count: count, Faces: faces, Multiplier: 1, Divisor: 1, Modifier: modifier}
	if err := e.Validate(); err != nil {
		return Expression{}, err
	}
	return e, nil
}

// Parse reads notation of the form [count]d<faces>[*N|/N][+M|-M]
func Parse(notation string) (Expression, error) {
	matches := notationRegex.FindStringSubmatch(strings.TrimSpace(notation))
	if matches == nil {
		return Expression{}, errors.MalformedExpressionf("invalid dice notation: %q (expected format: XdY[*N|/N][+M|-M])", notation)
	}

	e := Expression{Count: 1, Multiplier: 1, Divisor: 1}

	var err error
	if matches[1] != "" {
		if e.Count, err = strconv.Atoi(matches[1]); err != nil {
			return Expression{}, errors.MalformedExpressionf("invalid dice count in notation: %q", notation)
		}
	}
	if e.Faces, err = strconv.Atoi(matches[2]); err != nil {
		return Expression{}, errors.MalformedExpressionf("invalid die size in notation: %q", notation)
	}

	if matches[3] != "" {
		scale, err := strconv.Atoi(matches[4])
		if err != nil {
			return Expression{}, errors.MalformedExpressionf("invalid scale in notation: %q", notation)
		}
		if scale == 0 {
			return Expression{}, errors.MalformedExpressionf("scale must be positive in notation: %q", notation)
		}
		if matches[3] == "*" {
			e.Multiplier = scale
		} else {
			e.Divisor = scale
		}
	}

	if matches[5] != "" {
		mod, err := strconv.Atoi(matches[6])
		if err != nil {
			return Expression{}, errors.MalformedExpressionf("invalid modifier in notation: %q", notation)
		}
		if matches[5] == "-" {
			mod = -mod
		}
		e.Modifier = mod
	}

	if err := e.Validate(); err != nil {
		return Expression{}, errors.Wrapf(err, "invalid dice notation: %q", notation)
	}
	return e, nil
}

// MustParse is Parse for package-level tables of known-good notation
func MustParse(notation string) Expression {
	e, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return e
}

// Validate checks the expression's invariants
func (e Expression) Validate() error {
	switch {
	case e.Count < 1:
		return errors.MalformedExpressionf("dice count must be positive, got %d", e.Count)
	case e.Count > MaxCount:
		return errors.MalformedExpressionf("dice count must be at most %d, got %d", MaxCount, e.Count)
	case e.Faces < 2:
		return errors.MalformedExpressionf("dice must have at least 2 faces, got %d", e.Faces)
	case e.Faces > MaxFaces:
		return errors.MalformedExpressionf("dice must have at most %d faces, got %d", MaxFaces, e.Faces)
	case e.Multiplier < 0:
		return errors.MalformedExpressionf("multiplier must be positive, got %d", e.Multiplier)
	case e.Divisor < 0:
		return errors.MalformedExpressionf("divisor must be positive, got %d", e.Divisor)
	}
	return nil
}

// Evaluate rolls the expression once
func (e Expression) Evaluate(roller rpgdice.Roller) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	rolls, err := roller.RollN(e.Count, e.Faces)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %s", e)
	}

	sum := 0
	for _, r := range rolls {
		sum += r
	}
	return e.scale(sum) + e.Modifier, nil
}

// Min is the lowest value Evaluate can return
func (e Expression) Min() int {
	return e.scale(e.Count) + e.Modifier
}

// Max is the highest value Evaluate can return
func (e Expression) Max() int {
	return e.scale(e.Count*e.Faces) + e.Modifier
}

// Average is the midpoint of Min and Max, rounded down
func (e Expression) Average() int {
	return (e.Min() + e.Max()) / 2
}

// IsZero reports whether e is the zero Expression
func (e Expression) IsZero() bool {
	return e == Expression{}
}

// String renders canonical notation, e.g. 3d6+2, 1d20*2 or 4d6/2-1
func (e Expression) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dd%d", e.Count, e.Faces)
	if m := e.multiplier(); m != 1 {
		fmt.Fprintf(&sb, "*%d", m)
	}
	if d := e.divisor(); d != 1 {
		fmt.Fprintf(&sb, "/%d", d)
	}
	if e.Modifier > 0 {
		fmt.Fprintf(&sb, "+%d", e.Modifier)
	} else if e.Modifier < 0 {
		fmt.Fprintf(&sb, "%d", e.Modifier)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler
func (e Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Expression) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Expression) scale(n int) int {
	return n * e.multiplier() / e.divisor()
}

func (e Expression) multiplier() int {
	if e.Multiplier == 0 {
		return 1
	}
	return e.Multiplier
}

func (e Expression) divisor() int {
	if e.Divisor == 0 {
		return 1
	}
	return e.Divisor
}
