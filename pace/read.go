package pace

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/domsolve/graph"
	"github.com/katalvlaran/domsolve/instance"
)

const maxLine = 64 << 20

// lineReader yields the non-comment lines of r with their line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &lineReader{sc: sc}
}

// next returns the fields of the next content line, or io.EOF.
func (lr *lineReader) next() ([]string, error) { return lr.scan(false) }

// nextSet is next for hitting-set bodies, where a blank line is an empty
// set rather than filler.
func (lr *lineReader) nextSet() ([]string, error) { return lr.scan(true) }

func (lr *lineReader) scan(keepBlank bool) ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" && keepBlank {
			return []string{}, nil
		}
		if text == "" || text[0] == 'c' {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading line %d", lr.line+1)
	}
	return nil, io.EOF
}

func (lr *lineReader) malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, "line %d: "+format, append([]interface{}{lr.line}, args...)...)
}

// id parses a 1-based id in [1, n] and returns it 0-based.
func (lr *lineReader) id(s string, n int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, lr.malformed("%q is not an integer", s)
	}
	if v < 1 || v > n {
		return 0, lr.malformed("id %d outside [1,%d]", v, n)
	}
	return v - 1, nil
}

// Read parses a "p ds" or "p hs" input.
func Read(r io.Reader) (*Problem, error) {
	lr := newLineReader(r)
	head, err := lr.next()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformed, "missing header line")
	}
	if err != nil {
		return nil, err
	}
	if len(head) != 4 || head[0] != "p" {
		return nil, lr.malformed("header %q does not match `p (ds|hs) n m`", strings.Join(head, " "))
	}
	n, errN := strconv.Atoi(head[2])
	m, errM := strconv.Atoi(head[3])
	if errN != nil || errM != nil || n < 0 || m < 0 {
		return nil, lr.malformed("bad counts %q %q", head[2], head[3])
	}
	switch Kind(head[1]) {
	case DominatingSet:
		return readDS(lr, n, m)
	case HittingSet:
		return readHS(lr, n, m)
	}
	return nil, lr.malformed("unknown problem %q", head[1])
}

func readDS(lr *lineReader, n, m int) (*Problem, error) {
	g := graph.New(n)
	for i := 0; i < m; i++ {
		f, err := lr.next()
		if err == io.EOF {
			return nil, errors.Wrapf(ErrMalformed, "expected %d edges, found %d", m, i)
		}
		if err != nil {
			return nil, err
		}
		if len(f) != 2 {
			return nil, lr.malformed("edge line needs 2 ids, has %d", len(f))
		}
		u, err := lr.id(f[0], n)
		if err != nil {
			return nil, err
		}
		v, err := lr.id(f[1], n)
		if err != nil {
			return nil, err
		}
		if err := g.AddEdge(u, v); err != nil {
			return nil, lr.malformed("%v", err)
		}
	}
	return &Problem{Kind: DominatingSet, N: n, Graph: g}, nil
}

func readHS(lr *lineReader, n, m int) (*Problem, error) {
	sets := make([][]int, 0, m)
	for i := 0; i < m; i++ {
		f, err := lr.nextSet()
		if err == io.EOF {
			return nil, errors.Wrapf(ErrMalformed, "expected %d sets, found %d", m, i)
		}
		if err != nil {
			return nil, err
		}
		seen := make(map[int]bool, len(f))
		set := make([]int, 0, len(f))
		for _, s := range f {
			e, err := lr.id(s, n)
			if err != nil {
				return nil, err
			}
			if !seen[e] {
				seen[e] = true
				set = append(set, e)
			}
		}
		sets = append(sets, set)
	}
	return &Problem{Kind: HittingSet, N: n, Sets: sets}, nil
}

// Instance builds the covering-arc instance of p. Solutions of the instance
// are 0-based vertex ids for DominatingSet and 0-based element ids for
// HittingSet.
func (p *Problem) Instance() (*instance.Instance, error) {
	switch p.Kind {
	case DominatingSet:
		return instance.FromGraph(p.Graph), nil
	case HittingSet:
		in, err := instance.FromSets(p.N, p.Sets)
		return in, errors.Wrap(err, "building hitting-set instance")
	}
	return nil, errors.Wrapf(ErrMalformed, "unknown problem %q", p.Kind)
}

// ReadSolution parses a solution file into 0-based ids. n bounds the ids.
func ReadSolution(r io.Reader, n int) ([]int, error) {
	lr := newLineReader(r)
	head, err := lr.next()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformed, "empty solution")
	}
	if err != nil {
		return nil, err
	}
	k, err := strconv.Atoi(head[0])
	if len(head) != 1 || err != nil || k < 0 {
		return nil, lr.malformed("bad solution size %q", strings.Join(head, " "))
	}
	ds := make([]int, 0, k)
	for {
		f, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, s := range f {
			v, err := lr.id(s, n)
			if err != nil {
				return nil, err
			}
			ds = append(ds, v)
		}
	}
	if len(ds) != k {
		return nil, errors.Wrapf(ErrMalformed, "solution declares %d ids, lists %d", k, len(ds))
	}
	return ds, nil
}
