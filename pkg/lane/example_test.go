package lane_test

import (
	"fmt"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/lane"
)

func ExampleRing_EntranceSpan() {
	ring := lane.Ring{Lanes: 4}
	r := lane.Route{Entrance: 3, Exit: 1}

	ent, _ := ring.EntranceSpan(r)
	ext, _ := ring.ExitSpan(r)
	fmt.Println("entrance span:", ent)
	fmt.Println("exit span:", ext)
	// Output:
	// entrance span: [3 0 1]
	// exit span: [1 2 3]
}
