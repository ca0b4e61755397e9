package git

import (
	"fmt"
	"strings"
)

// unmerged XY pairs as documented in git-status(1).
var conflictCodes = map[string]bool{
	"DD": true,
	"AU": true,
	"UD": true,
	"UA": true,
	"DU": true,
	"AA": true,
	"UU": true,
}

// ParsePorcelain parses the output of `git status --porcelain=v1 -z`.
func ParsePorcelain(out []byte) (Status, error) {
	var st Status
	fields := strings.Split(string(out), "\x00")

	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		if len(entry) < 4 || entry[2] != ' ' {
			return Status{}, fmt.Errorf("malformed status entry %q", entry)
		}

		code := entry[:2]
		path := entry[3:]
		x, y := code[0], code[1]

		// Renames and copies carry the original path in the next field.
		if x == 'R' || x == 'C' || y == 'R' || y == 'C' {
			i++
		}

		switch {
		case conflictCodes[code]:
			st.Conflicted = append(st.Conflicted, path)
			continue
		case code == "??":
			st.Changes = append(st.Changes, FileChange{Path: path, Kind: ChangeUntracked})
			continue
		case code == "!!":
			continue
		}

		if x != ' ' {
			st.Staged = append(st.Staged, path)
		}
		switch y {
		case ' ':
		case 'M':
			st.Changes = append(st.Changes, FileChange{Path: path, Kind: ChangeModified})
		default:
			st.Changes = append(st.Changes, FileChange{Path: path, Kind: ChangeOther})
		}
	}

	return st, nil
}
