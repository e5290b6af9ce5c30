package risk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joripage/tradeguard/pkg/tradeguard/model"
	"github.com/shopspring/decimal"
)

func testAccount(nlv, cash, buyingPower int64) *model.UserAccount {
	return &model.UserAccount{
		AccountID:           uuid.New(),
		UserName:            "trader1",
		NetLiquidationValue: decimal.NewFromInt(nlv),
		TotalCash:           decimal.NewFromInt(cash),
		BuyingPower:         decimal.NewFromInt(buyingPower),
	}
}

func testOrder(action model.OrderAction, shares, price int64) *model.OrderSubmitted {
	return &model.OrderSubmitted{
		OrderID:        uuid.New(),
		AccountID:      uuid.New(),
		Ticker:         "PLTR",
		Action:         action,
		ActionMode:     model.ActionModeLimit,
		NumberOfShares: decimal.NewFromInt(shares),
		PricePerShare:  decimal.NewFromInt(price),
	}
}

func TestNonPositiveValuesFailExposureAndMargin(t *testing.T) {
	account := testAccount(100_000, 20_000, 50_000)
	exposure := &ExposureGate{}
	margin := &MarginGate{}

	cases := []struct {
		shares int64
		price  int64
	}{
		{0, 100},
		{-5, 100},
		{100, 0},
		{100, -1},
		{0, 0},
	}

	for _, c := range cases {
		order := testOrder(model.OrderActionBuy, c.shares, c.price)
		if err := exposure.Check(order, account); err != ErrExposureLimitExceeded {
			t.Errorf("exposure shares=%d price=%d: expected %v, got %v", c.shares, c.price, ErrExposureLimitExceeded, err)
		}
		if err := margin.Check(order, account); err != ErrInsufficientMargin {
			t.Errorf("margin shares=%d price=%d: expected %v, got %v", c.shares, c.price, ErrInsufficientMargin, err)
		}
	}
}

func TestSellAlwaysPassesExposureAndMargin(t *testing.T) {
	// account that could never afford the same order as a buy
	account := testAccount(10, 0, 0)
	order := testOrder(model.OrderActionSell, 1_000_000, 500)

	if err := (&ExposureGate{}).Check(order, account); err != nil {
		t.Errorf("exposure: expected sell to pass, got %v", err)
	}
	if err := (&MarginGate{}).Check(order, account); err != nil {
		t.Errorf("margin: expected sell to pass, got %v", err)
	}
}

func TestExposureBoundaryInclusive(t *testing.T) {
	// cap = max(100_000*1.5, 50_000+20_000) = 150_000
	account := testAccount(100_000, 20_000, 50_000)
	gate := &ExposureGate{}

	atCap := testOrder(model.OrderActionBuy, 1, 150_000)
	if err := gate.Check(atCap, account); err != nil {
		t.Errorf("notional at cap: expected pass, got %v", err)
	}

	aboveCap := testOrder(model.OrderActionBuy, 1, 150_001)
	if err := gate.Check(aboveCap, account); err != ErrExposureLimitExceeded {
		t.Errorf("notional above cap: expected %v, got %v", ErrExposureLimitExceeded, err)
	}
}

func TestExposureCapTakesLargerOfNLVAndCash(t *testing.T) {
	// NLV side negative, cash side wins: cap = max(0, 30_000+40_000) = 70_000
	account := testAccount(-10_000, 40_000, 30_000)
	gate := &ExposureGate{}

	within := testOrder(model.OrderActionBuy, 7, 10_000)
	if err := gate.Check(within, account); err != nil {
		t.Errorf("expected pass under cash cap, got %v", err)
	}

	over := testOrder(model.OrderActionBuy, 7, 10_001)
	if err := gate.Check(over, account); err != ErrExposureLimitExceeded {
		t.Errorf("expected %v over cash cap, got %v", ErrExposureLimitExceeded, err)
	}
}

func TestMarginBoundaryInclusive(t *testing.T) {
	// required = 0.25 * 200_000 = 50_000 == buying power
	account := testAccount(1_000_000, 0, 50_000)
	gate := &MarginGate{}

	atLimit := testOrder(model.OrderActionBuy, 2, 100_000)
	if err := gate.Check(atLimit, account); err != nil {
		t.Errorf("margin at limit: expected pass, got %v", err)
	}

	aboveLimit := testOrder(model.OrderActionBuy, 2, 100_002)
	if err := gate.Check(aboveLimit, account); err != ErrInsufficientMargin {
		t.Errorf("margin above limit: expected %v, got %v", ErrInsufficientMargin, err)
	}
}

func TestVelocityAllowanceClamp(t *testing.T) {
	gate := &VelocityGate{}

	cases := []struct {
		buyingPower int64
		want        int64
	}{
		{0, 5},
		{9_999, 5},
		{10_000, 6},
		{123_456, 17},
		{450_000, 50},
		{1_000_000, 50},
	}

	for _, c := range cases {
		got := gate.allowance(testAccount(0, 0, c.buyingPower))
		if got != c.want {
			t.Errorf("buyingPower=%d: expected allowance %d, got %d", c.buyingPower, c.want, got)
		}
	}
}

func TestVelocityStubAlwaysPasses(t *testing.T) {
	gate := &VelocityGate{}
	if err := gate.Check(testOrder(model.OrderActionBuy, 1, 1), testAccount(0, 0, 0)); err != nil {
		t.Errorf("expected velocity stub to pass a single order, got %v", err)
	}
}

func TestEngineApprovesAffordableBuy(t *testing.T) {
	engine := NewEngine()
	account := testAccount(100_000, 20_000, 50_000)
	order := testOrder(model.OrderActionBuy, 100, 300) // notional 30_000

	decision := engine.Decide(order, account)
	if !decision.Approved {
		t.Fatalf("expected approval, got rejection: %s", decision.Reason)
	}
	if decision.Reason != "" {
		t.Errorf("expected empty reason on approval, got %q", decision.Reason)
	}
}

func TestEngineRejectsOversizedBuyWithExposureReason(t *testing.T) {
	engine := NewEngine()
	account := testAccount(100_000, 20_000, 50_000)
	order := testOrder(model.OrderActionBuy, 1000, 300) // notional 300_000 > 150_000 cap

	decision := engine.Decide(order, account)
	if decision.Approved {
		t.Fatal("expected rejection, got approval")
	}
	if decision.Reason != "Exposure limit exceeded" {
		t.Errorf("expected exposure reason, got %q", decision.Reason)
	}
}

func TestEngineShortCircuitsOnFirstFailingGate(t *testing.T) {
	engine := NewEngine()
	account := testAccount(100_000, 20_000, 50_000)
	// fails exposure and margin; the exposure reason must win
	order := testOrder(model.OrderActionBuy, 0, 300)

	decision := engine.Decide(order, account)
	if decision.Approved {
		t.Fatal("expected rejection, got approval")
	}
	if decision.Reason != "Exposure limit exceeded" {
		t.Errorf("expected first gate's reason, got %q", decision.Reason)
	}
}

func TestEngineRejectsOnMarginWhenExposurePasses(t *testing.T) {
	engine := NewEngine()
	// cap = 150_000 but buying power only covers 0.25*40_000
	account := testAccount(100_000, 20_000, 10_000)
	order := testOrder(model.OrderActionBuy, 100, 500) // notional 50_000, required 12_500

	decision := engine.Decide(order, account)
	if decision.Approved {
		t.Fatal("expected rejection, got approval")
	}
	if decision.Reason != "Insufficient margin" {
		t.Errorf("expected margin reason, got %q", decision.Reason)
	}
}
