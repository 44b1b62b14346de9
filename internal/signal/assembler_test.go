package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/signal-engine/internal/logger"
	"github.com/rxtech-lab/signal-engine/internal/strategy"
	"github.com/rxtech-lab/signal-engine/internal/types"
)

type AssemblerTestSuite struct {
	suite.Suite
	assembler *Assembler
}

func TestAssemblerSuite(t *testing.T) {
	suite.Run(t, new(AssemblerTestSuite))
}

func (suite *AssemblerTestSuite) SetupTest() {
	catalog, err := strategy.DefaultCatalog()
	suite.Require().NoError(err)
	suite.assembler = NewAssembler(catalog, logger.NewNopLogger())
}

// breakoutSnapshot fires the BBRK ladder fully and the BVBO base trigger.
func breakoutSnapshot() types.IndicatorSnapshot {
	snap := types.NewIndicatorSnapshot("AAPL", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	snap.Open = 116
	snap.High = 121
	snap.Low = 115
	snap.Close = 120
	snap.Volume = 1600

	snap.BBUpper = 115
	snap.BBMiddle = 108
	snap.BBLower = 101
	snap.BBWidthRisingCount = 4

	snap.EMA5 = 112
	snap.EMA10 = 111
	snap.EMA12 = 110
	snap.EMA26 = 105
	snap.EMA50 = 100
	snap.EMA100 = 95
	snap.SMA20 = 100
	snap.SMA50 = 98

	snap.MACD = 2
	snap.MACDSignal = 1
	snap.MACDHist = 1

	snap.RSI6 = 72
	snap.RSI7 = 70
	snap.RSI14 = 65
	snap.RSI21 = 62
	snap.RSI24 = 60

	snap.StochK = 85
	snap.StochD = 75
	snap.WilliamsR = -10
	snap.ADX14 = 32
	snap.MFI14 = 70
	snap.AccumDist = 5000
	snap.ParabolicSAR = 98
	snap.ATR14 = 3
	snap.VolumeRatio = 1.6
	snap.RefreshEMAStack()

	return snap
}

func (suite *AssemblerTestSuite) TestEmitsOnlyFiredStrategies() {
	signals, err := suite.assembler.Assemble("run-1", breakoutSnapshot(), nil)
	suite.Require().NoError(err)
	suite.NotEmpty(signals)

	byStrategy := make(map[string]types.Signal)
	for _, sig := range signals {
		byStrategy[sig.BaseStrategy] = sig
	}

	// Breakout fires at full strength.
	bbrk, ok := byStrategy["BBRK"]
	suite.Require().True(ok)
	suite.Equal(9, bbrk.Strength)
	suite.Equal("BBRK9", bbrk.StrategyKey)
	suite.Equal(types.SignalActionBuy, bbrk.Action)

	// Mean reversion buy cannot fire on a breakout bar.
	_, ok = byStrategy["BMRV"]
	suite.False(ok)

	// A sell breakdown cannot fire either.
	_, ok = byStrategy["SBDN"]
	suite.False(ok)
}

func (suite *AssemblerTestSuite) TestNoBaseTriggerMeansAbsence() {
	snap := types.NewIndicatorSnapshot("AAPL", time.Now())
	snap.Close = 100
	snap.Open = 100

	signals, err := suite.assembler.Assemble("run-1", snap, nil)
	suite.Require().NoError(err)
	suite.Empty(signals)
}

func (suite *AssemblerTestSuite) TestSignalCarriesEvidence() {
	signals, err := suite.assembler.Assemble("run-1", breakoutSnapshot(), nil)
	suite.Require().NoError(err)

	var bbrk types.Signal
	for _, sig := range signals {
		if sig.BaseStrategy == "BBRK" {
			bbrk = sig
		}
	}

	suite.Require().NotEmpty(bbrk.SignalID)
	suite.Equal("run-1", bbrk.RunID)
	suite.Equal("AAPL", bbrk.Symbol)
	suite.Len(bbrk.Reasons, 9)
	suite.Equal("close above upper Bollinger band", bbrk.Reasons[0])
	suite.InDelta(120.0, bbrk.CloseAtSignal, 1e-12)
	suite.InDelta(1600.0, bbrk.VolumeAtSignal, 1e-12)
	suite.True(bbrk.Provisional)

	// Thresholds record the values evaluation used.
	suite.InDelta(55.0, bbrk.Thresholds["rsi_floor"], 1e-12)
	suite.NotEmpty(bbrk.Thresholds)
}

func (suite *AssemblerTestSuite) TestReasonsStopAtFirstFailure() {
	snap := breakoutSnapshot()
	snap.MACD = 0.5
	snap.MACDHist = -0.5

	signals, err := suite.assembler.Assemble("run-1", snap, nil)
	suite.Require().NoError(err)

	for _, sig := range signals {
		if sig.BaseStrategy != "BBRK" {
			continue
		}

		suite.Equal(3, sig.Strength)
		suite.Equal("BBRK3", sig.StrategyKey)
		suite.Len(sig.Reasons, 3)
	}
}

func (suite *AssemblerTestSuite) TestOverridesFlowIntoThresholds() {
	signals, err := suite.assembler.Assemble("run-1", breakoutSnapshot(), strategy.Params{"rsi_floor": 68})
	suite.Require().NoError(err)

	for _, sig := range signals {
		if sig.BaseStrategy != "BBRK" {
			continue
		}

		// RSI14=65 under the tightened floor caps the ladder at level 5.
		suite.Equal(5, sig.Strength)
		suite.InDelta(68.0, sig.Thresholds["rsi_floor"], 1e-12)
	}
}

func (suite *AssemblerTestSuite) TestScoreSubcomponents() {
	signals, err := suite.assembler.Assemble("run-1", breakoutSnapshot(), nil)
	suite.Require().NoError(err)

	for _, sig := range signals {
		suite.GreaterOrEqual(sig.Score.Magnitude, 0.0)
		suite.LessOrEqual(sig.Score.Magnitude, 100.0)
		suite.GreaterOrEqual(sig.Score.Momentum, 0.0)
		suite.LessOrEqual(sig.Score.Momentum, 100.0)
		suite.GreaterOrEqual(sig.Score.Participation, 0.0)
		suite.LessOrEqual(sig.Score.Participation, 100.0)
		suite.InDelta((sig.Score.Magnitude+sig.Score.Momentum+sig.Score.Participation)/3,
			sig.Score.Composite, 1e-9)
	}
}
