package migrate

import (
	"strconv"
	"strings"
)

// CompareVersions compares two dotted version strings numerically per
// component, so "2.10.0" sorts above "2.9.0". Missing or non-numeric
// components count as zero. Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")

	n := len(pa)
	if len(pb) > n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		va := component(pa, i)
		vb := component(pb, i)
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
	}
	return 0
}

func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}
