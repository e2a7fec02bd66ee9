package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type backoffSuite struct {
	suite.Suite
}

func TestBackoffSuite(t *testing.T) {
	suite.Run(t, new(backoffSuite))
}

func (s *backoffSuite) TestExponential() {
	b := NewExponential(time.Millisecond, 5*time.Millisecond)
	expected := []time.Duration{1, 2, 4, 5, 5}
	for i, d := range expected {
		s.Equal(d*time.Millisecond, b.Next, "wait %d", i)
		s.Require().NoError(b.Wait(context.Background()))
	}
	s.Equal(len(expected), b.Count())

	b.Reset()
	s.Equal(time.Millisecond, b.Next)
	s.Equal(0, b.Count())
}

func (s *backoffSuite) TestLinear() {
	b := NewLinear(time.Millisecond, 0)
	for i := 1; i <= 3; i++ {
		s.Equal(time.Duration(i)*time.Millisecond, b.Next)
		s.Require().NoError(b.Wait(context.Background()))
	}
}

func (s *backoffSuite) TestCancelled() {
	b := NewExponential(time.Hour, 0)
	c, cancel := context.WithCancel(context.Background())
	cancel()

	s.Equal(context.Canceled, b.Wait(c))
	s.Equal(0, b.Count())
	s.Equal(time.Hour, b.Next)
}
