package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/platform"
	platformRepository "github.com/heritage-x/goapi/stores/platform/repository"
)

var (
	platformOwner = domain.Address("0x000000000000000000000000000000000000aaaa")
	feeRecipient  = domain.Address("0x000000000000000000000000000000000000bbbb")
	stranger      = domain.Address("0x000000000000000000000000000000000000cccc")
)

type platformTestSuite struct {
	suite.Suite

	uc platform.Usecase
}

func TestPlatformSuite(t *testing.T) {
	suite.Run(t, new(platformTestSuite))
}

func (s *platformTestSuite) SetupTest() {
	repo := platformRepository.New(platformOwner, feeRecipient, 250, big.NewInt(1000))
	s.uc = New(repo)
}

func (s *platformTestSuite) TestGetFeeInfo() {
	ctx := bCtx.Background()

	info, err := s.uc.GetFeeInfo(ctx)
	s.Require().NoError(err)
	s.Equal(feeRecipient, info.Recipient)
	s.Equal(int64(250), info.Numerator)
}

func (s *platformTestSuite) TestSetFeeInfoRequiresOwner() {
	ctx := bCtx.Background()

	err := s.uc.SetFeeInfo(ctx, stranger, feeRecipient, 100)
	s.ErrorIs(err, domain.ErrNotPlatformOwner)

	err = s.uc.SetFeeInfo(ctx, platformOwner, feeRecipient, 100)
	s.Require().NoError(err)

	info, err := s.uc.GetFeeInfo(ctx)
	s.Require().NoError(err)
	s.Equal(int64(100), info.Numerator)
}

func (s *platformTestSuite) TestSetFeeInfoBounds() {
	ctx := bCtx.Background()

	err := s.uc.SetFeeInfo(ctx, platformOwner, feeRecipient, platform.MaxFeeNumerator+1)
	s.ErrorIs(err, domain.ErrPlatformFeeTooHigh)

	err = s.uc.SetFeeInfo(ctx, platformOwner, feeRecipient, -1)
	s.ErrorIs(err, domain.ErrPlatformFeeTooHigh)

	// the full range up to 100% is allowed
	err = s.uc.SetFeeInfo(ctx, platformOwner, feeRecipient, platform.MaxFeeNumerator)
	s.NoError(err)
}

func (s *platformTestSuite) TestFeeFor() {
	ctx := bCtx.Background()

	price, ok := new(big.Int).SetString("1000000000000000000", 10)
	s.Require().True(ok)

	recipient, amount, err := s.uc.FeeFor(ctx, price)
	s.Require().NoError(err)
	s.Equal(feeRecipient, recipient)
	// 2.5% of 1 ether
	s.Equal("25000000000000000", amount.String())
}

func (s *platformTestSuite) TestFeeForRoundsDown() {
	ctx := bCtx.Background()

	_, amount, err := s.uc.FeeFor(ctx, big.NewInt(39))
	s.Require().NoError(err)
	// floor(39*250/10000) = 0
	s.Equal(int64(0), amount.Int64())
}

func (s *platformTestSuite) TestCreationFee() {
	ctx := bCtx.Background()

	fee, err := s.uc.CreationFee(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1000), fee.Int64())

	// mutating the returned value must not affect the stored config
	fee.SetInt64(0)
	fee2, err := s.uc.CreationFee(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1000), fee2.Int64())
}
