package pace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/katalvlaran/domsolve/graph"
)

// WriteSolution writes ds (0-based ids) as a PACE solution: the size, then
// one 1-based id per line.
func WriteSolution(w io.Writer, ds []int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(ds))
	for _, v := range ds {
		fmt.Fprintf(bw, "%d\n", v+1)
	}
	return errors.Wrap(bw.Flush(), "writing solution")
}

// WriteGraph writes g as a "p ds" instance.
func WriteGraph(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p ds %d %d\n", g.Order(), g.Size())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d %d\n", e[0]+1, e[1]+1)
	}
	return errors.Wrap(bw.Flush(), "writing graph")
}
