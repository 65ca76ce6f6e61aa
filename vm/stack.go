package vm

// Stack is a growable stack of bytes. The top is the last element.
type Stack struct {
	Data []uint8
}

func (s *Stack) Push(value uint8) {
	s.Data = append(s.Data, value)
}

func (s *Stack) Pop() (value uint8, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value uint8, ok bool) {
	return s.Pick(0)
}

// Pick returns the value at depth n, where 0 is the top.
func (s *Stack) Pick(n int) (value uint8, ok bool) {
	if n < 0 || n >= s.Depth() {
		return
	}

	return s.Data[len(s.Data)-1-n], true
}

// Poke replaces the value at depth n, where 0 is the top.
func (s *Stack) Poke(n int, value uint8) (ok bool) {
	if n < 0 || n >= s.Depth() {
		return
	}

	s.Data[len(s.Data)-1-n] = value
	return true
}

func (s *Stack) Reset() {
	if !s.Empty() {
		s.Data = s.Data[:0]
	}
}
