package coordinate

import (
	"cmp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
)

const (
	snapshotSuffix = "-SNAPSHOT"
	latestPrefix   = "latest."

	// LatestMarker asks the resolver for the highest available version.
	LatestMarker = "+"

	unspecifiedMarker = "?"
)

// Version is an opaque, immutable module version.
// The zero value is the unspecified version.
type Version struct {
	raw string
}

// Unspecified is the version of a dependency declared without one.
var Unspecified = Version{}

// NewVersion creates a Version from its textual form.
// Both "" and "?" produce [Unspecified].
func NewVersion(s string) Version {
	s = strings.TrimSpace(s)
	if s == "" || s == unspecifiedMarker {
		return Unspecified
	}
	return Version{raw: s}
}

// Latest returns the "+" version, interpreted by the resolver as the highest available.
func Latest() Version {
	return Version{raw: LatestMarker}
}

// String returns the version text, or "" when unspecified.
func (v Version) String() string {
	return v.raw
}

// IsUnspecified returns true for the zero value.
func (v Version) IsUnspecified() bool {
	return v.raw == ""
}

// IsSnapshot returns true for versions ending with -SNAPSHOT.
func (v Version) IsSnapshot() bool {
	return strings.HasSuffix(v.raw, snapshotSuffix)
}

// IsDynamic returns true when the version must be interpreted by a resolver:
// "+", a "+" suffix, "latest.*" or a bracketed range such as "[1.0,2.0)".
func (v Version) IsDynamic() bool {
	if v.raw == "" {
		return false
	}
	if strings.HasSuffix(v.raw, LatestMarker) || strings.HasPrefix(v.raw, latestPrefix) {
		return true
	}
	first, last := v.raw[0], v.raw[len(v.raw)-1]
	return (first == '[' || first == '(') && (last == ']' || last == ')')
}

// IsGreaterThan returns true if v sorts strictly after other.
func (v Version) IsGreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Compare orders two versions. Returns -1 if v < other, 0 if equal, 1 if v > other.
// Unspecified sorts before every specified version.
func (v Version) Compare(other Version) int {
	switch {
	case v.IsUnspecified() && other.IsUnspecified():
		return 0
	case v.IsUnspecified():
		return -1
	case other.IsUnspecified():
		return 1
	}
	if c, ok := compareStrictSemver(v.raw, other.raw); ok {
		return c
	}
	return compareItems(parseItems(v.raw), parseItems(other.raw))
}

// compareStrictSemver handles plain MAJOR.MINOR.PATCH releases. Anything carrying
// qualifiers goes through the Maven-style comparison since semver ranks them differently.
func compareStrictSemver(a, b string) (int, bool) {
	va, err := semver.StrictNewVersion(a)
	if err != nil || va.Prerelease() != "" || va.Metadata() != "" {
		return 0, false
	}
	vb, err := semver.StrictNewVersion(b)
	if err != nil || vb.Prerelease() != "" || vb.Metadata() != "" {
		return 0, false
	}
	return va.Compare(vb), true
}

// item is one token of a version: either a number or a qualifier.
type item struct {
	isNumber bool
	number   uint64
	digits   string // original digits, used when number overflows
	text     string
}

// qualifierRanks orders well-known qualifiers. The release (empty) qualifier sits
// between snapshot and sp, unknown qualifiers sort after all of them.
var qualifierRanks = map[string]int{
	"alpha":     0,
	"beta":      1,
	"milestone": 2,
	"rc":        3,
	"cr":        3,
	"snapshot":  4,
	"":          5,
	"ga":        5,
	"final":     5,
	"release":   5,
	"sp":        6,
}

const unknownQualifierRank = 7

func parseItems(s string) []item {
	s = strings.ToLower(s)
	var items []item
	var cur strings.Builder
	curDigits := false

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		items = append(items, newItem(cur.String(), curDigits))
		cur.Reset()
	}

	// segment is where the items after the last "-" start.
	segment := 0
	trimNulls := func() {
		for len(items) > segment && items[len(items)-1].isNull() {
			items = items[:len(items)-1]
		}
	}

	for _, r := range s {
		switch r {
		case '-':
			flush()
			trimNulls()
			segment = len(items)
			continue
		case '.', '_':
			flush()
			continue
		}
		isDigit := unicode.IsDigit(r)
		if cur.Len() > 0 && isDigit != curDigits {
			flush()
		}
		curDigits = isDigit
		cur.WriteRune(r)
	}
	flush()

	// Zeros and release qualifiers before a "-" or at the end carry no ordering information.
	segment = 0
	trimNulls()
	return items
}

func newItem(tok string, digits bool) item {
	if digits {
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return item{isNumber: true, digits: strings.TrimLeft(tok, "0"), number: 0}
		}
		return item{isNumber: true, number: n}
	}
	return item{text: tok}
}

func (i item) isNull() bool {
	if i.isNumber {
		return i.number == 0 && i.digits == ""
	}
	return qualifierRank(i.text) == qualifierRanks[""]
}

func qualifierRank(q string) int {
	if r, ok := qualifierRanks[q]; ok {
		return r
	}
	return unknownQualifierRank
}

func compareItems(a, b []item) int {
	for i := range max(len(a), len(b)) {
		var x, y *item
		if i < len(a) {
			x = &a[i]
		}
		if i < len(b) {
			y = &b[i]
		}
		if c := compareItem(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// compareItem compares two tokens; nil stands for a missing (null) token.
func compareItem(x, y *item) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -compareItem(y, nil)
	}

	if y == nil {
		if x.isNumber {
			if x.isNull() {
				return 0
			}
			return 1
		}
		return cmp.Compare(qualifierRank(x.text), qualifierRanks[""])
	}

	switch {
	case x.isNumber && y.isNumber:
		return compareNumbers(*x, *y)
	case x.isNumber:
		return 1 // numbers outrank qualifiers
	case y.isNumber:
		return -1
	}

	rx, ry := qualifierRank(x.text), qualifierRank(y.text)
	if rx != ry {
		return cmp.Compare(rx, ry)
	}
	if rx == unknownQualifierRank {
		return strings.Compare(x.text, y.text)
	}
	return 0
}

func compareNumbers(x, y item) int {
	// Overflowed numbers are longer than any uint64.
	switch {
	case x.digits != "" && y.digits != "":
		if len(x.digits) != len(y.digits) {
			return cmp.Compare(len(x.digits), len(y.digits))
		}
		return strings.Compare(x.digits, y.digits)
	case x.digits != "":
		return 1
	case y.digits != "":
		return -1
	}
	return cmp.Compare(x.number, y.number)
}

// Versions is a sortable slice of Version.
type Versions []Version

func (v Versions) Len() int           { return len(v) }
func (v Versions) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }
func (v Versions) Less(i, j int) bool { return v[i].Compare(v[j]) < 0 }
