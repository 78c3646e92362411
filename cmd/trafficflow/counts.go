package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anggasct/trafficflow"
)

// parseCounts reads "N=10,E=4,S=0,W=6"; full direction names are accepted
func parseCounts(s string) (trafficflow.VehicleCounts, error) {
	counts := make(trafficflow.VehicleCounts)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid count %q, expected DIRECTION=N", pair)
		}
		d, err := trafficflow.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		if _, dup := counts[d]; dup {
			return nil, fmt.Errorf("direction %s given more than once", d)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %w", d, err)
		}
		counts[d] = n
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	return counts, nil
}
