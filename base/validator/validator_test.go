package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	cases := []struct {
		address string
		valid   bool
	}{
		{"0x000", false},
		{"not-an-address", false},
		{"0xbc4CA0EdA7647A8aB7C2061c2E118A18a936f13D", true},
		{"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", true},
	}
	for _, c := range cases {
		s.Equal(c.valid, IsValidAddress(c.address), c.address)
	}
}

func (s *ValidatorTestSuite) TestCustomTags() {
	type params struct {
		BidderAddress string          `validate:"required,address"`
		BidAmount     decimal.Decimal `validate:"positive"`
		DropType      string          `validate:"oneof=normal premium"`
	}

	v := NewCustomValidator(New())

	s.NoError(v.Validate(&params{
		BidderAddress: "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		BidAmount:     decimal.NewFromInt(55),
		DropType:      "premium",
	}))
	s.Error(v.Validate(&params{
		BidderAddress: "0x000",
		BidAmount:     decimal.NewFromInt(55),
		DropType:      "normal",
	}))
	s.Error(v.Validate(&params{
		BidderAddress: "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		BidAmount:     decimal.Zero,
		DropType:      "normal",
	}))
	s.Error(v.Validate(&params{
		BidderAddress: "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		BidAmount:     decimal.NewFromInt(1),
		DropType:      "gold",
	}))
}
