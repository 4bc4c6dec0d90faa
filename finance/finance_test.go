package finance

import (
	"math/big"
	"testing"
)

// kpg builds an amount of n whole display units in smallest units.
func kpg(n int64) *big.Int {
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(DecimalExponent), nil)
	return new(big.Int).Mul(big.NewInt(n), unit)
}

func TestToDisplayUnit(t *testing.T) {
	if got := ToDisplayUnit(kpg(5)); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	half := new(big.Int).Div(kpg(1), big.NewInt(2))
	if got := ToDisplayUnit(half); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := ToDisplayUnit(nil); got != 0 {
		t.Errorf("expected 0 for nil, got %v", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount *big.Int
		want   string
	}{
		{kpg(12), "12.0000"},
		{new(big.Int).Div(kpg(1), big.NewInt(4)), "0.2500"},
		{new(big.Int), "0.0000"},
		{nil, "0.0000"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.amount); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		if got := ProgressPercent(kpg(40), kpg(100)); got != 40 {
			t.Errorf("expected 40, got %v", got)
		}
	})

	t.Run("over-funded clamps to 100", func(t *testing.T) {
		if got := ProgressPercent(kpg(150), kpg(100)); got != 100 {
			t.Errorf("expected 100, got %v", got)
		}
	})

	t.Run("zero goal", func(t *testing.T) {
		if got := ProgressPercent(kpg(10), new(big.Int)); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("nil inputs", func(t *testing.T) {
		if got := ProgressPercent(nil, nil); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	// clamp property over a range of raised values
	goal := kpg(100)
	for n := int64(0); n <= 300; n += 7 {
		pct := ProgressPercent(kpg(n), goal)
		if pct < 0 || pct > 100 {
			t.Fatalf("ProgressPercent(%d, 100) = %v out of [0, 100]", n, pct)
		}
	}
}

func TestPlatformFee(t *testing.T) {
	// 2.5% of 100 KPG
	fee := PlatformFee(kpg(100), 250)
	if fee.Cmp(new(big.Int).Div(kpg(5), big.NewInt(2))) != 0 {
		t.Errorf("expected 2.5 KPG fee, got %s", FormatAmount(fee))
	}

	net := NetAmount(kpg(100), 250)
	if net.Cmp(new(big.Int).Div(kpg(195), big.NewInt(2))) != 0 {
		t.Errorf("expected 97.5 KPG net, got %s", FormatAmount(net))
	}

	if PlatformFee(nil, 250).Sign() != 0 {
		t.Error("nil amount must yield zero fee")
	}
	if PlatformFee(kpg(100), 0).Sign() != 0 {
		t.Error("zero rate must yield zero fee")
	}
}

// Fee plus net must reconstruct the original amount exactly, including
// amounts that do not divide evenly by the rate.
func TestFeeNetSplitExact(t *testing.T) {
	rates := []int64{1, 250, 999, 10000}
	amounts := []*big.Int{
		big.NewInt(1),
		big.NewInt(3),
		big.NewInt(9999),
		kpg(1),
		kpg(777),
		new(big.Int).Add(kpg(123), big.NewInt(456789)),
	}
	for _, rate := range rates {
		for _, amount := range amounts {
			fee := PlatformFee(amount, rate)
			net := NetAmount(amount, rate)
			sum := new(big.Int).Add(fee, net)
			if sum.Cmp(amount) != 0 {
				t.Errorf("rate %d: fee %s + net %s != amount %s", rate, fee, net, amount)
			}
			if fee.Sign() < 0 || net.Sign() < 0 {
				t.Errorf("rate %d amount %s: negative split %s/%s", rate, amount, fee, net)
			}
		}
	}
}

func TestUSDEquivalent(t *testing.T) {
	t.Run("known rate", func(t *testing.T) {
		usd, ok := USDEquivalent(40, 0.25)
		if !ok || usd != 10 {
			t.Errorf("expected 10 usd, got %v ok=%v", usd, ok)
		}
		if got := FormatUSD(40, 0.25); got != " (~$10.00)" {
			t.Errorf("unexpected suffix %q", got)
		}
	})

	t.Run("rate unavailable", func(t *testing.T) {
		if _, ok := USDEquivalent(40, 0); ok {
			t.Error("zero rate must not produce a figure")
		}
		if got := FormatUSD(40, 0); got != "" {
			t.Errorf("expected empty suffix, got %q", got)
		}
	})
}
