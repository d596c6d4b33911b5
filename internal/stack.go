package internal

import "fmt"

// callStack holds subroutine return addresses, bounded by a configured depth.
type callStack struct {
	addrs []uint16
	limit int
}

func newCallStack(limit int) callStack {
	return callStack{
		addrs: make([]uint16, 0, limit),
		limit: limit,
	}
}

func (s *callStack) push(addr uint16) error {
	if len(s.addrs) >= s.limit {
		return fmt.Errorf("%w: depth limit %d reached", ErrStackOverflow, s.limit)
	}
	s.addrs = append(s.addrs, addr)
	return nil
}

func (s *callStack) pop() (uint16, error) {
	n := len(s.addrs)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	addr := s.addrs[n-1]
	s.addrs = s.addrs[:n-1]
	return addr, nil
}

func (s *callStack) depth() int {
	return len(s.addrs)
}

func (s *callStack) reset() {
	s.addrs = s.addrs[:0]
}
