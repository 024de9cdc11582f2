package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var roomRe = regexp.MustCompile(`^([A-Za-z]+\d*)\s*-\s*(\d{3,4})$`)

// ParsedRoom holds the structured data parsed from a room number.
type ParsedRoom struct {
	Block string
	Floor int
	Seq   int
}

// String renders the canonical form, e.g. "A-304".
func (p ParsedRoom) String() string {
	return fmt.Sprintf("%s-%d%02d", p.Block, p.Floor, p.Seq)
}

// ParseRoomNumber extracts block, floor, and sequence from a room number
// of the form "<block>-<floor><seq>", e.g. "A-304" is block A, floor 3,
// room 4 and "B2-1210" is block B2, floor 12, room 10. The last two
// digits are always the sequence on the floor.
func ParseRoomNumber(raw string) (ParsedRoom, error) {
	s := strings.TrimSpace(raw)

	m := roomRe.FindStringSubmatch(s)
	if m == nil {
		return ParsedRoom{}, fmt.Errorf("unable to parse room number: %q", raw)
	}

	digits := m[2]
	floor, err := strconv.Atoi(digits[:len(digits)-2])
	if err != nil {
		return ParsedRoom{}, fmt.Errorf("unable to parse floor from room number: %q", raw)
	}
	seq, err := strconv.Atoi(digits[len(digits)-2:])
	if err != nil {
		return ParsedRoom{}, fmt.Errorf("unable to parse sequence from room number: %q", raw)
	}

	if floor == 0 {
		return ParsedRoom{}, fmt.Errorf("room number has no floor: %q", raw)
	}

	return ParsedRoom{Block: strings.ToUpper(m[1]), Floor: floor, Seq: seq}, nil
}
