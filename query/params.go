package query

import (
	"fmt"
	"net/url"
	"strconv"
)

// Defaults maps query parameter names to the value used when the client
// omits the parameter entirely.
type Defaults map[string]string

// FindDefaults covers the list endpoints: empty filter and sort, window
// starting at the first row, count 0 meaning "all remaining rows".
var FindDefaults = Defaults{
	"filter": "",
	"sort":   "",
	"start":  "0",
	"count":  "0",
}

// Normalize flattens url.Values into a single-valued map, filling in the
// defaults for missing keys. Extra parameters the endpoint does not know are
// carried through untouched; handlers simply never read them.
func Normalize(values url.Values, defaults ...Defaults) map[string]string {
	params := make(map[string]string)
	for key := range values {
		params[key] = values.Get(key)
	}
	for _, set := range defaults {
		for key, value := range set {
			if _, ok := params[key]; !ok {
				params[key] = value
			}
		}
	}
	return params
}

// Window parses the paging parameters. Both must be non-negative integers;
// count 0 disables the upper bound.
func Window(params map[string]string) (start, count int, err error) {
	start, err = strconv.Atoi(params["start"])
	if err != nil || start < 0 {
		return 0, 0, fmt.Errorf("invalid start %q", params["start"])
	}
	count, err = strconv.Atoi(params["count"])
	if err != nil || count < 0 {
		return 0, 0, fmt.Errorf("invalid count %q", params["count"])
	}
	return start, count, nil
}
