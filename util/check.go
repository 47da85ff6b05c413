package util

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	reMessageKey = regexp.MustCompile(`^[a-z0-9_]*[0-9]$`)
)

// CheckResult holds the outcome of checking a messages.json file.
type CheckResult struct {
	Entries  int
	Flagged  int
	Problems []string
}

// CheckMessagesJSON validates generated messages.json content. Invalid JSON
// is an error; suspicious entries are reported in Problems.
func CheckMessagesJSON(data []byte) (*CheckResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("top level value is not an object")
	}

	var (
		result = &CheckResult{}
		seen   = make(map[string]bool)
	)
	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		result.Entries++
		if seen[k] {
			result.Problems = append(result.Problems,
				fmt.Sprintf("duplicate key %q, only the last one is used", k))
		}
		seen[k] = true

		if !reMessageKey.MatchString(k) {
			result.Problems = append(result.Problems,
				fmt.Sprintf("bad key %q, must match %s", k, reMessageKey))
		}
		message := value.Get("message")
		if !value.IsObject() || message.Type != gjson.String {
			result.Problems = append(result.Problems,
				fmt.Sprintf("key %q: value has no string \"message\"", k))
			return true
		}
		if s := message.String(); strings.HasPrefix(s, "# ") && strings.HasSuffix(s, " #") {
			result.Flagged++
		}
		return true
	})
	return result, nil
}
